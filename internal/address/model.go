package address

// Address is one free-form delivery address a user has ordered to before.
type Address = string
