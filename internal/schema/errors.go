package schema

import "fmt"

// TypeNotFoundError is returned when a type name is not registered.
type TypeNotFoundError struct {
	Name string
}

func (e *TypeNotFoundError) Error() string {
	return fmt.Sprintf("Type with id %q is not present in the types container", e.Name)
}

// ConfigurationError reports resource metadata that cannot become a schema.
// It aborts the build.
type ConfigurationError struct {
	Operation string
	ShortName string
	Value     string
	Message   string
	Cause     error
}

func (e *ConfigurationError) Error() string { return e.Message }

func (e *ConfigurationError) Unwrap() error { return e.Cause }

func errReservedNode(class string) error {
	return &ConfigurationError{
		ShortName: "Node",
		Value:     class,
		Message:   `A "Node" resource cannot be used with GraphQL because the type is already used by the Relay specification.`,
	}
}

func errMissingArgType(arg, operation, shortName string) error {
	return &ConfigurationError{
		Operation: operation,
		ShortName: shortName,
		Value:     arg,
		Message:   fmt.Sprintf(`The argument "%s" of the custom operation "%s" in %s needs a "type" option.`, arg, operation, shortName),
	}
}

func errInvalidTypeString(ref string, cause error) error {
	return &ConfigurationError{
		Value:   ref,
		Message: fmt.Sprintf(`"%s" is not a valid GraphQL type.`, ref),
		Cause:   cause,
	}
}

func errUnresolvedTypeString(ref string) error {
	return &ConfigurationError{
		Value:   ref,
		Message: fmt.Sprintf(`The type "%s" was not resolved.`, ref),
	}
}

func errMissingFilter(filter, operation, shortName string) error {
	return &ConfigurationError{
		Operation: operation,
		ShortName: shortName,
		Value:     filter,
		Message:   fmt.Sprintf(`The filter "%s" of the operation "%s" in %s is not registered.`, filter, operation, shortName),
	}
}

func errNotObject(name string) error {
	return &ConfigurationError{
		Value:   name,
		Message: fmt.Sprintf(`The type "%s" is registered but is not an object type.`, name),
	}
}
