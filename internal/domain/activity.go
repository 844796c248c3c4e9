package domain

import "slices"

// Activity is an extracurricular offering students can sign up for.
// MaxParticipants is informational; signup never checks it.
type Activity struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// Clone returns a copy that shares no memory with the receiver.
func (a Activity) Clone() Activity {
	out := a
	out.Participants = slices.Clone(a.Participants)
	if out.Participants == nil {
		out.Participants = []string{}
	}
	return out
}

// HasParticipant reports whether email is registered.
func (a Activity) HasParticipant(email string) bool {
	return slices.Contains(a.Participants, email)
}

// Directory maps activity names to activities.
type Directory map[string]Activity

// Clone deep-copies the directory.
func (d Directory) Clone() Directory {
	out := make(Directory, len(d))
	for name, activity := range d {
		out[name] = activity.Clone()
	}
	return out
}
