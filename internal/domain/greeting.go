package domain

import "fmt"

const greetingPrefix = "Hello from Flask!"

// Greeting is the text served on the root route.
type Greeting struct {
	Environment string
	DBPassword  string
}

func NewGreeting(environment, dbPassword string) Greeting {
	return Greeting{Environment: environment, DBPassword: dbPassword}
}

// Text renders the greeting. includeDB adds the database password segment
// served by the secrets-bootstrapped server.
func (g Greeting) Text(includeDB bool) string {
	if includeDB {
		return fmt.Sprintf("%s Environment: %s | DB: %s", greetingPrefix, g.Environment, g.DBPassword)
	}
	return fmt.Sprintf("%s Environment: %s", greetingPrefix, g.Environment)
}
