package dto

import "github.com/clientbook/clientbook/internal/service"

// ClientRequest represents the body of client create and update requests.
// Ownership fields such as userId are not part of the contract and are dropped on decode.
type ClientRequest struct {
	FullName *string `json:"fullName"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Company  *string `json:"company"`
	Address  *string `json:"address"`
	Notes    *string `json:"notes"`
}

// ToInput converts the request to creation input; absent fields become empty.
func (r ClientRequest) ToInput() service.ClientInput {
	return service.ClientInput{
		FullName: deref(r.FullName),
		Email:    deref(r.Email),
		Phone:    deref(r.Phone),
		Company:  deref(r.Company),
		Address:  deref(r.Address),
		Notes:    deref(r.Notes),
	}
}

// ToPatch converts the request to a partial update.
func (r ClientRequest) ToPatch() service.ClientPatch {
	return service.ClientPatch{
		FullName: r.FullName,
		Email:    r.Email,
		Phone:    r.Phone,
		Company:  r.Company,
		Address:  r.Address,
		Notes:    r.Notes,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
