package bot

import (
	"errors"
	"testing"

	"github.com/botshop/internal/constants"
)

func TestPayloadRoundTrip(t *testing.T) {
	original := Payload{
		Action:    ActionPayment,
		ProductID: 42,
		Quantity:  3,
		Method:    constants.PaymentMethodPoints,
		Source:    constants.PurchaseSourceCommand,
	}
	parsed, err := ParsePayload(original.Encode())
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if parsed != original {
		t.Fatalf("round trip mismatch: %+v != %+v", parsed, original)
	}
}

func TestParsePayloadForeignCustomID(t *testing.T) {
	if _, err := ParsePayload("other_bot_button_1"); !errors.Is(err, ErrPayloadUnknown) {
		t.Fatalf("expected unknown custom id, got %v", err)
	}
}

func TestParsePayloadMalformedJSON(t *testing.T) {
	if _, err := ParsePayload(customIDPrefix + "{not json"); !errors.Is(err, ErrPayloadInvalid) {
		t.Fatalf("expected invalid payload, got %v", err)
	}
}

func TestParsePayloadValidation(t *testing.T) {
	cases := []struct {
		name    string
		payload Payload
		valid   bool
	}{
		{"category select", Payload{Action: ActionSelectCategory}, true},
		{"product select", Payload{Action: ActionSelectProduct}, true},
		{"cancel", Payload{Action: ActionCancel}, true},
		{"quantity ok", Payload{Action: ActionQuantity, ProductID: 1, Quantity: 2}, true},
		{"quantity missing product", Payload{Action: ActionQuantity}, false},
		{"payment ok", Payload{Action: ActionPayment, ProductID: 1, Quantity: 1, Method: constants.PaymentMethodStripe}, true},
		{"payment zero quantity", Payload{Action: ActionPayment, ProductID: 1, Method: constants.PaymentMethodStripe}, false},
		{"payment unknown method", Payload{Action: ActionPayment, ProductID: 1, Quantity: 1, Method: "cash"}, false},
		{"payment unknown source", Payload{Action: ActionPayment, ProductID: 1, Quantity: 1, Method: constants.PaymentMethodPaypal, Source: "webhook"}, false},
		{"unknown action", Payload{Action: "admin"}, false},
	}
	for _, tc := range cases {
		_, err := ParsePayload(tc.payload.Encode())
		if tc.valid && err != nil {
			t.Fatalf("%s: expected valid, got %v", tc.name, err)
		}
		if !tc.valid && !errors.Is(err, ErrPayloadInvalid) {
			t.Fatalf("%s: expected invalid payload, got %v", tc.name, err)
		}
	}
}

func TestPurchaseSourceDefaultsToButton(t *testing.T) {
	if got := (Payload{}).PurchaseSource(); got != constants.PurchaseSourceButton {
		t.Fatalf("expected button default, got %s", got)
	}
	p := Payload{Source: constants.PurchaseSourceCommand}
	if got := p.PurchaseSource(); got != constants.PurchaseSourceCommand {
		t.Fatalf("expected command source, got %s", got)
	}
}
