package leadchat

// Contact holds the prospect's contact profile. All fields are optional at
// the model level; name and email are only required at the booking boundary.
type Contact struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Company string `json:"company,omitempty"`
	Title   string `json:"title,omitempty"`
}

// ContactUpdate is a partial contact profile update. Empty fields leave the
// prior value untouched.
type ContactUpdate struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Company string `json:"company,omitempty"`
	Title   string `json:"title,omitempty"`
}

// MergeContact folds a partial contact update into a previous profile,
// field-by-field last-write-wins. A non-empty field in the update
// overwrites; an empty field keeps the prior value. Email values are not
// validated here. Pure function.
func MergeContact(previous Contact, update ContactUpdate) Contact {
	merged := previous

	if update.Name != "" {
		merged.Name = update.Name
	}
	if update.Email != "" {
		merged.Email = update.Email
	}
	if update.Phone != "" {
		merged.Phone = update.Phone
	}
	if update.Company != "" {
		merged.Company = update.Company
	}
	if update.Title != "" {
		merged.Title = update.Title
	}

	return merged
}

// HasChannel reports whether the profile carries at least one reachable
// contact channel (email or phone).
func (c Contact) HasChannel() bool {
	return c.Email != "" || c.Phone != ""
}
