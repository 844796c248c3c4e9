package directory

import "example.com/schoolactivities/internal/domain"

// DefaultSeed returns the activities offered when the service starts.
func DefaultSeed() domain.Directory {
	return domain.Directory{
		"Chess Club": {
			Description:     "Learn strategies and compete in chess tournaments",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 12,
			Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
		},
		"Programming Class": {
			Description:     "Learn programming fundamentals and build software projects",
			Schedule:        "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 20,
			Participants:    []string{"emma@mergington.edu", "sophia@mergington.edu"},
		},
		"Gym Class": {
			Description:     "Physical education and sports activities",
			Schedule:        "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM",
			MaxParticipants: 30,
			Participants:    []string{"john@mergington.edu", "olivia@mergington.edu"},
		},
		"Basketball Team": {
			Description:     "Join the school basketball team and compete in local leagues",
			Schedule:        "Wednesdays, 4:00 PM - 6:00 PM",
			MaxParticipants: 15,
			Participants:    []string{"alex@mergington.edu", "jordan@mergington.edu"},
		},
		"Soccer Club": {
			Description:     "Practice soccer skills and play friendly matches",
			Schedule:        "Saturdays, 10:00 AM - 12:00 PM",
			MaxParticipants: 20,
			Participants:    []string{"lucas@mergington.edu", "mia@mergington.edu"},
		},
		"Art Workshop": {
			Description:     "Explore painting, drawing, and sculpture techniques",
			Schedule:        "Thursdays, 3:30 PM - 5:00 PM",
			MaxParticipants: 10,
			Participants:    []string{"ava@mergington.edu", "liam@mergington.edu"},
		},
		"Drama Club": {
			Description:     "Act, direct, and produce school plays and performances",
			Schedule:        "Mondays, 4:00 PM - 5:30 PM",
			MaxParticipants: 18,
			Participants:    []string{"ella@mergington.edu", "noah@mergington.edu"},
		},
		"Math Olympiad": {
			Description:     "Prepare for math competitions and solve challenging problems",
			Schedule:        "Tuesdays, 5:00 PM - 6:00 PM",
			MaxParticipants: 12,
			Participants:    []string{"isabella@mergington.edu", "ethan@mergington.edu"},
		},
		"Science Club": {
			Description:     "Conduct experiments and explore scientific concepts",
			Schedule:        "Fridays, 2:30 PM - 4:00 PM",
			MaxParticipants: 16,
			Participants:    []string{"charlotte@mergington.edu", "benjamin@mergington.edu"},
		},
	}
}
