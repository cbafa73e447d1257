package model

import "strings"

// MinIncomeAge is the youngest age allowed to record income.
const MinIncomeAge = 18

// Person is an individual who owns transactions.
type Person struct {
	ID   int
	Name string
	Age  int
}

// NewPerson validates and builds a Person. The ID is assigned by the repository.
func NewPerson(name string, age int) (Person, error) {
	var p Person
	if err := p.Update(name, age); err != nil {
		return Person{}, err
	}
	return p, nil
}

// Update replaces name and age after re-validating them.
func (p *Person) Update(name string, age int) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ValidationError{Field: "name", Description: "name is required"}
	}
	if age <= 0 {
		return ValidationError{Field: "age", Description: "age must be a positive integer"}
	}
	p.Name = name
	p.Age = age
	return nil
}

// IsMinor reports whether the person is below MinIncomeAge.
func (p Person) IsMinor() bool {
	return p.Age < MinIncomeAge
}
