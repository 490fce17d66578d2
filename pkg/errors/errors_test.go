package errors

import (
	stdErrors "errors"
	"net/http"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code      Code
		status    int
		publicMsg string
		retryable bool
		detailsOK bool
	}{
		{code: CodeValidation, status: http.StatusUnprocessableEntity, publicMsg: "validation failed", detailsOK: true},
		{code: CodeNotFound, status: http.StatusNotFound, publicMsg: "resource not found"},
		{code: CodeInvalidProductType, status: http.StatusBadRequest, publicMsg: "invalid product type", detailsOK: true},
		{code: CodeInvalidProductLocation, status: http.StatusBadRequest, publicMsg: "invalid product location", detailsOK: true},
		{code: CodeInvalidExpiryDate, status: http.StatusBadRequest, publicMsg: "invalid expiry date", detailsOK: true},
		{code: CodeUnknownOrderField, status: http.StatusBadRequest, publicMsg: "unknown order field", detailsOK: true},
		{code: CodeConflict, status: http.StatusConflict, publicMsg: "conflict detected"},
		{code: CodeInternal, status: http.StatusInternalServerError, publicMsg: "internal server error", retryable: true},
		{code: CodeDependency, status: http.StatusServiceUnavailable, publicMsg: "dependency unavailable", retryable: true, detailsOK: true},
	}

	for _, tt := range tests {
		meta := MetadataFor(tt.code)
		if meta.HTTPStatus != tt.status {
			t.Fatalf("code %s expected status %d got %d", tt.code, tt.status, meta.HTTPStatus)
		}
		if meta.PublicMessage != tt.publicMsg {
			t.Fatalf("code %s expected public message %q got %q", tt.code, tt.publicMsg, meta.PublicMessage)
		}
		if meta.Retryable != tt.retryable {
			t.Fatalf("code %s expected retryable %v got %v", tt.code, tt.retryable, meta.Retryable)
		}
		if meta.DetailsAllowed != tt.detailsOK {
			t.Fatalf("code %s expected details allowed %v got %v", tt.code, tt.detailsOK, meta.DetailsAllowed)
		}
	}
}

func TestMetadataForUnknownCodeDefaultsToInternal(t *testing.T) {
	meta := MetadataFor("SOMETHING_UNKNOWN")
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal status, got %d", meta.HTTPStatus)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stdErrors.New("boom")
	err := Wrap(CodeInternal, cause, "storage failed")

	if !stdErrors.Is(err, cause) {
		t.Fatal("expected wrapped error to unwrap to its cause")
	}
	if err.Code() != CodeInternal {
		t.Fatalf("expected code %s, got %s", CodeInternal, err.Code())
	}
}

func TestAsFindsTypedErrorInChain(t *testing.T) {
	typed := New(CodeNotFound, "missing")
	wrapped := Wrap(CodeInternal, typed, "outer")

	found := As(wrapped)
	if found == nil {
		t.Fatal("expected As to locate typed error")
	}
	if found.Code() != CodeInternal {
		t.Fatalf("expected outermost code, got %s", found.Code())
	}

	if As(stdErrors.New("plain")) != nil {
		t.Fatal("expected As to return nil for untyped error")
	}
}

func TestHasCode(t *testing.T) {
	err := New(CodeInvalidExpiryDate, "too early")

	if !HasCode(err, CodeInvalidExpiryDate) {
		t.Fatal("expected HasCode to match")
	}
	if HasCode(err, CodeNotFound) {
		t.Fatal("expected HasCode mismatch for different code")
	}
	if HasCode(nil, CodeNotFound) {
		t.Fatal("expected HasCode to be false for nil error")
	}
}

func TestWithDetails(t *testing.T) {
	err := New(CodeValidation, "bad input").WithDetails(map[string]any{"field": "quantity"})

	details, ok := err.Details().(map[string]any)
	if !ok {
		t.Fatalf("expected map details, got %T", err.Details())
	}
	if details["field"] != "quantity" {
		t.Fatalf("unexpected details: %v", details)
	}
}
