package models

// PersonalInfo is a fully assembled record. Field order is the JSON order.
type PersonalInfo struct {
	DateOfBirth   DateOfBirth `json:"date_of_birth"`
	FirstName     string      `json:"first_name"`
	FirstNameKana string      `json:"first_name_kana"`
	LastName      string      `json:"last_name"`
	LastNameKana  string      `json:"last_name_kana"`
	Sex           Sex         `json:"sex"`
}

// NewPersonalInfo combines an already rendered name with sex and birth date.
func NewPersonalInfo(name Name, sex Sex, dob DateOfBirth) PersonalInfo {
	return PersonalInfo{
		DateOfBirth:   dob,
		FirstName:     name.FirstName,
		FirstNameKana: name.FirstNameKana,
		LastName:      name.LastName,
		LastNameKana:  name.LastNameKana,
		Sex:           sex,
	}
}
