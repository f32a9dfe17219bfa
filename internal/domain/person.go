package domain

import "fmt"

// PersonID ist die vom Repository vergebene Kennung. Vor dem Speichern ist sie nicht gesetzt.
type PersonID struct {
	value int64
	set   bool
}

// NewPersonID erzeugt eine gesetzte ID.
func NewPersonID(v int64) PersonID {
	return PersonID{value: v, set: true}
}

// Int64 gibt den Wert und ob er gesetzt ist zurück.
func (id PersonID) Int64() (int64, bool) {
	return id.value, id.set
}

func (id PersonID) IsSet() bool {
	return id.set
}

// Person repräsentiert eine Person und ihre Lieblingsfarbe.
type Person struct {
	ID        PersonID
	FirstName string
	LastName  string
	Zipcode   string
	City      string
	Color     Color
}

// WithID gibt eine Kopie von p mit der vergebenen ID zurück. Eine bereits gesetzte ID wird nie überschrieben.
func (p Person) WithID(id int64) (Person, error) {
	if p.ID.IsSet() {
		return Person{}, fmt.Errorf("person %d: %w", p.ID.value, ErrIdentityAssigned)
	}
	p.ID = NewPersonID(id)
	return p, nil
}
