// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeToolFailed,
//	    "docker build failed",
//	    execErr,
//	    map[string]interface{}{
//	        "image": imageRef,
//	    },
//	)
package errors
