//go:build !integration

// File: internal/infra/twilio/signature_test.go
package twilio

import (
	"net/url"
	"testing"
)

// Vector from the Twilio request-validation documentation.
const (
	docToken     = "12345"
	docURL       = "https://mycompany.com/myapp.php?foo=1&bar=2"
	docSignature = "RSOYDt4T1cUTdK1PDd93/VVr8B8="
)

func docForm() url.Values {
	return url.Values{
		"CallSid": {"CA1234567890ABCDE"},
		"Caller":  {"+14158675310"},
		"Digits":  {"1234"},
		"From":    {"+14158675310"},
		"To":      {"+18005551212"},
	}
}

func TestValidSignature(t *testing.T) {
	if !ValidSignature(docToken, docURL, docForm(), docSignature) {
		t.Fatal("documented vector rejected")
	}
}

func TestValidSignature_Rejections(t *testing.T) {
	t.Run("wrong token", func(t *testing.T) {
		if ValidSignature("54321", docURL, docForm(), docSignature) {
			t.Error("accepted with the wrong auth token")
		}
	})

	t.Run("tampered parameter", func(t *testing.T) {
		form := docForm()
		form.Set("Digits", "9999")
		if ValidSignature(docToken, docURL, form, docSignature) {
			t.Error("accepted a tampered form")
		}
	})

	t.Run("different url", func(t *testing.T) {
		if ValidSignature(docToken, "https://mycompany.com/other.php", docForm(), docSignature) {
			t.Error("accepted for a different URL")
		}
	})

	t.Run("empty signature", func(t *testing.T) {
		if ValidSignature(docToken, docURL, docForm(), "") {
			t.Error("accepted an empty signature")
		}
	})
}
