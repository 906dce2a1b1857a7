package partner

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/jewelry-erp/backend/internal/domain/shared"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9\- ]{3,30}$`)

// Customer buys from any branch; customers are not branch-scoped
type Customer struct {
	shared.AuditedAggregateRoot
	shared.SoftDelete
	Name  string
	Phone string
}

// NewCustomer creates a customer
func NewCustomer(name, phone string, createdBy uuid.UUID) (*Customer, error) {
	c := &Customer{AuditedAggregateRoot: shared.NewAuditedAggregateRoot(createdBy)}
	if err := c.apply(name, phone); err != nil {
		return nil, err
	}
	return c, nil
}

// Update changes name and phone
func (c *Customer) Update(name, phone string) error {
	if err := c.apply(name, phone); err != nil {
		return err
	}
	c.Revise()
	return nil
}

func (c *Customer) apply(name, phone string) error {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if err := shared.ValidateName("Customer name", name, 255); err != nil {
		return err
	}
	if !phonePattern.MatchString(phone) {
		return shared.NewValidationError("INVALID_PHONE", "Invalid phone number")
	}
	c.Name = name
	c.Phone = phone
	return nil
}
