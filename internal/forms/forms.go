// Package forms holds the declarative per-form validation rule tables.
// Rules run before the workflow handler; the first failing rule
// short-circuits the request and its message becomes the error flash.
package forms

import "strings"

// Getter reads a single form field, typically gin's PostForm.
type Getter func(field string) string

// Rule validates one field of a form.
type Rule struct {
	Field   string              // Form field name
	Message string              // User-facing message when the check fails
	Check   func(v string) bool // Returns true when the value is acceptable
}

// Required accepts any non-blank value.
func Required(v string) bool {
	return strings.TrimSpace(v) != ""
}

// Validate evaluates the rules in order and returns the first failing
// rule's message, or "" when the form passes.
func Validate(get Getter, rules []Rule) string {
	for _, r := range rules {
		if !r.Check(get(r.Field)) {
			return r.Message
		}
	}
	return ""
}

// Withdraw is the withdrawal submission form. The "default" placeholder
// coin is rejected later in the workflow, after the row write, to keep the
// observed submit-then-check behavior.
var Withdraw = []Rule{
	{Field: "amount", Message: "Please enter an amount to withdraw", Check: Required},
	{Field: "coin_name", Message: "Please select a coin name.", Check: Required},
	{Field: "address", Message: "Please enter a wallet address", Check: Required},
}

// Deposit is the deposit submission form.
var Deposit = []Rule{
	{Field: "amount", Message: "Please enter an amount to deposit", Check: Required},
	{Field: "address", Message: "Please enter the wallet address you sent from", Check: Required},
}

// Notification is the admin send-notification form.
var Notification = []Rule{
	{Field: "title", Message: "Title field is required", Check: Required},
	{Field: "body", Message: "Body field is required", Check: Required},
	{Field: "email", Message: "Please select a user email", Check: Required},
}

// StatUpdate is the admin update-person form.
var StatUpdate = []Rule{
	{Field: "uid", Message: "Enter a user id to update", Check: Required},
	{Field: "earning", Message: "Please add earning for the user", Check: Required},
	{Field: "deposit", Message: "Please add deposit for the user", Check: Required},
	{Field: "balance", Message: "Please add balance for the user", Check: Required},
	{Field: "withdraws", Message: "Please add withdraws for the user", Check: Required},
}

// Register is the account registration form.
var Register = []Rule{
	{Field: "name", Message: "Please enter your name", Check: Required},
	{Field: "email", Message: "Please enter your email", Check: Required},
	{Field: "password", Message: "Password must be 8-15 characters", Check: func(v string) bool {
		return len(v) >= 8 && len(v) <= 15
	}},
}

// Login is the login form.
var Login = []Rule{
	{Field: "email", Message: "Please enter your email", Check: Required},
	{Field: "password", Message: "Please enter your password", Check: Required},
}
