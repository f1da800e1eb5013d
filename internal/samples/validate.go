package samples

import (
	"regexp"
	"strings"

	"github.com/Sujal391/Gaushala-Ecom-sub001/internal/models"
)

// ValidationError names the first field that failed and the message to show.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var pincodeRe = regexp.MustCompile(`^[0-9]{6}$`)

type rule struct {
	field   string
	ok      func(*models.SampleRequest) bool
	message string
}

// rules run in order and the first failure wins; later rules are not checked.
var rules = []rule{
	{"productId", func(r *models.SampleRequest) bool { return r.ProductID != 0 }, "Please select a product."},
	{"productName", func(r *models.SampleRequest) bool { return strings.TrimSpace(r.ProductName) != "" }, "Product name is missing."},
	{"houseNo", func(r *models.SampleRequest) bool { return strings.TrimSpace(r.HouseNo) != "" }, "House number is required."},
	{"street", func(r *models.SampleRequest) bool { return strings.TrimSpace(r.Street) != "" }, "Street is required."},
	{"city", func(r *models.SampleRequest) bool { return strings.TrimSpace(r.City) != "" }, "City is required."},
	{"state", func(r *models.SampleRequest) bool { return strings.TrimSpace(r.State) != "" }, "State is required."},
	{"pincode", func(r *models.SampleRequest) bool { return strings.TrimSpace(r.Pincode) != "" }, "Pincode is required."},
	{"pincode", func(r *models.SampleRequest) bool { return pincodeRe.MatchString(strings.TrimSpace(r.Pincode)) }, "Pincode must be exactly 6 digits."},
}

// Validate checks the request against the ordered rule list. A nil return
// means the payload may be submitted.
func Validate(req *models.SampleRequest) *ValidationError {
	for _, r := range rules {
		if !r.ok(req) {
			return &ValidationError{Field: r.field, Message: r.message}
		}
	}
	return nil
}
