package handler

// Request schemas cover formats only. Business rules (positive amounts,
// sufficient funds, existing accounts) are checked again by the services.
// {{ID_LENGTH}} is replaced with the configured account number length.

const amountPattern = `"^\\d+(\\.\\d{1,2})?$"`

const accountNumberPattern = `"^\\d{{{ID_LENGTH}}}$"`

const createAccountSchema = `{
  "type": "object",
  "additionalProperties": false,
  "required": ["name", "email", "phone", "initial_deposit", "pin"],
  "properties": {
    "name": {"type": "string", "pattern": "^[A-Za-z\\s]{3,}$", "maxLength": 100},
    "email": {"type": "string", "pattern": "^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\\.[a-zA-Z]{2,}$"},
    "phone": {"type": "string", "pattern": "^\\d{10}$"},
    "initial_deposit": {"type": "string", "pattern": ` + amountPattern + `},
    "pin": {"type": "string", "pattern": "^\\d{4}$"}
  }
}`

const loginSchema = `{
  "type": "object",
  "additionalProperties": false,
  "required": ["account_number", "pin"],
  "properties": {
    "account_number": {"type": "string", "pattern": ` + accountNumberPattern + `},
    "pin": {"type": "string", "pattern": "^\\d{4}$"}
  }
}`

const cashSchema = `{
  "type": "object",
  "additionalProperties": false,
  "required": ["amount"],
  "properties": {
    "amount": {"type": "string", "pattern": ` + amountPattern + `},
    "description": {"type": "string", "maxLength": 140}
  }
}`

const transferSchema = `{
  "type": "object",
  "additionalProperties": false,
  "required": ["sender_account_number", "recipient_account_number", "amount"],
  "properties": {
    "sender_account_number": {"type": "string", "pattern": ` + accountNumberPattern + `},
    "recipient_account_number": {"type": "string", "pattern": ` + accountNumberPattern + `},
    "amount": {"type": "string", "pattern": ` + amountPattern + `},
    "description": {"type": "string", "maxLength": 140}
  }
}`
