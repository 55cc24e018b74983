package core

// Logger is any leveled logger.
// args may hold an error, a map[string]interface{} of extras and one Person.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}

// Person identifies the profile a log entry relates to.
type Person struct {
	ID       string
	Username string
	Email    string
}
