package customer

import (
	"errors"
	"strings"
)

var ErrEmptyCustomerID = errors.New("customer id cannot be empty")

type Customer struct {
	id       string
	fullName string
	email    string
	status   Status
}

func NewCustomer(id, fullName, email string, status Status) (*Customer, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrEmptyCustomerID
	}
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}
	return &Customer{
		id:       id,
		fullName: strings.TrimSpace(fullName),
		email:    strings.TrimSpace(email),
		status:   status,
	}, nil
}

func (c *Customer) ID() string       { return c.id }
func (c *Customer) FullName() string { return c.fullName }
func (c *Customer) Email() string    { return c.email }
func (c *Customer) Status() Status   { return c.status }
func (c *Customer) IsActive() bool   { return c.status == StatusActive }

// Directory indexes customers by id and serves as the validator's customer directory.
type Directory map[string]*Customer

func NewDirectory(customers []*Customer) Directory {
	d := make(Directory, len(customers))
	for _, c := range customers {
		d[c.id] = c
	}
	return d
}

func (d Directory) LookupCustomer(id string) (active, ok bool) {
	c, ok := d[id]
	if !ok {
		return false, false
	}
	return c.IsActive(), true
}
