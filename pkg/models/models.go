package models

// All lists every table for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Order{},
		&Product{},
		&Review{},
		&Contact{},
		&Property{},
		&Notification{},
	}
}
