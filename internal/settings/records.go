package settings

import "time"

type Business struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedOn   time.Time `json:"created_on"`
}

func (b Business) RecordID() int { return b.ID }

// new businesses always start active
func (Business) create(id int, p Patch, now time.Time) Business {
	return Business{
		ID:          id,
		Name:        nameOrUntitled(p.Name),
		Description: deref(p.Description, ""),
		IsActive:    true,
		CreatedOn:   now,
	}
}

func (b Business) apply(p Patch) Business {
	if p.Name != nil {
		b.Name = nameOrUntitled(p.Name)
	}
	b.Description = deref(p.Description, b.Description)
	b.IsActive = deref(p.IsActive, b.IsActive)
	return b
}

func (b Business) toggled() Business {
	b.IsActive = !b.IsActive
	return b
}

type ExpenditureCategory struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsActive    bool   `json:"is_active"`
}

func (c ExpenditureCategory) RecordID() int { return c.ID }

func (ExpenditureCategory) create(id int, p Patch, _ time.Time) ExpenditureCategory {
	return ExpenditureCategory{
		ID:          id,
		Name:        nameOrUntitled(p.Name),
		Description: deref(p.Description, ""),
		IsActive:    deref(p.IsActive, true),
	}
}

func (c ExpenditureCategory) apply(p Patch) ExpenditureCategory {
	if p.Name != nil {
		c.Name = nameOrUntitled(p.Name)
	}
	c.Description = deref(p.Description, c.Description)
	c.IsActive = deref(p.IsActive, c.IsActive)
	return c
}

func (c ExpenditureCategory) toggled() ExpenditureCategory {
	c.IsActive = !c.IsActive
	return c
}

type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

type Integration struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}
