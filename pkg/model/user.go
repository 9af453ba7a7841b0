package model

import "go.mongodb.org/mongo-driver/bson"

// User is created on first sign-in. Timestamps are stored as sent by the client's identity provider.
// Any other profile fields the client sends are kept in Extra.
type User struct {
	ID          string `json:"_id,omitempty" bson:"_id,omitempty"`
	Email       string `json:"email" bson:"email" validate:"required,email"`
	Name        string `json:"name,omitempty" bson:"name,omitempty" validate:"omitempty,max=100"`
	PhotoURL    string `json:"photoURL,omitempty" bson:"photoURL,omitempty" validate:"omitempty,url"`
	CreatedAt   string `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	LastLoginAt string `json:"lastLoginAt,omitempty" bson:"lastLoginAt,omitempty"`
	Extra       bson.M `json:"-" bson:",inline"`
}

type userFields User

func (u User) MarshalJSON() ([]byte, error) {
	return encodeWithExtra(userFields(u), u.Extra)
}

func (u *User) UnmarshalJSON(data []byte) error {
	var fields userFields
	extra, err := decodeWithExtra(data, &fields)
	if err != nil {
		return err
	}
	fields.Extra = extra
	*u = User(fields)
	return nil
}

type UserLogin struct {
	Email       string `json:"email" validate:"required,email"`
	LastLoginAt string `json:"lastLoginAt" validate:"required"`
}

type UpdateResult struct {
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}
