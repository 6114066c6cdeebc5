package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"smartbank/internal/errors"
)

const maxBodyBytes = 1 << 16

// Validator checks request bodies against the request schemas before they
// reach a handler.
type Validator struct {
	createAccount *jsonschema.Schema
	login         *jsonschema.Schema
	cash          *jsonschema.Schema
	transfer      *jsonschema.Schema
}

func NewValidator(idLength int) (*Validator, error) {
	replacer := strings.NewReplacer("{{ID_LENGTH}}", strconv.Itoa(idLength))

	compile := func(name, schema string) (*jsonschema.Schema, error) {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(name, strings.NewReader(replacer.Replace(schema))); err != nil {
			return nil, err
		}
		return compiler.Compile(name)
	}

	v := &Validator{}
	var err error
	if v.createAccount, err = compile("create_account.json", createAccountSchema); err != nil {
		return nil, err
	}
	if v.login, err = compile("login.json", loginSchema); err != nil {
		return nil, err
	}
	if v.cash, err = compile("cash.json", cashSchema); err != nil {
		return nil, err
	}
	if v.transfer, err = compile("transfer.json", transferSchema); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *Validator) CreateAccount(next http.HandlerFunc) http.Handler {
	return validateBody(v.createAccount, next)
}

func (v *Validator) Login(next http.HandlerFunc) http.Handler {
	return validateBody(v.login, next)
}

func (v *Validator) Cash(next http.HandlerFunc) http.Handler {
	return validateBody(v.cash, next)
}

func (v *Validator) Transfer(next http.HandlerFunc) http.Handler {
	return validateBody(v.transfer, next)
}

func validateBody(schema *jsonschema.Schema, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body == nil {
			writeError(w, errors.NewAppError(errors.InvalidInput, "request body is required"))
			return
		}

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			writeError(w, errors.NewAppError(errors.InvalidInput, "unreadable request body").WithDetails(err.Error()))
			return
		}
		_ = r.Body.Close()

		var payload interface{}
		dec := json.NewDecoder(bytes.NewReader(body))
		dec.UseNumber()
		if err := dec.Decode(&payload); err != nil {
			writeError(w, errors.NewAppError(errors.InvalidInput, "invalid JSON").WithDetails(err.Error()))
			return
		}

		if err := schema.Validate(payload); err != nil {
			writeError(w, errors.NewAppError(errors.InvalidInput, "request failed validation").WithDetails(err.Error()))
			return
		}

		r.Body = io.NopCloser(bytes.NewReader(body))
		next.ServeHTTP(w, r)
	})
}
