package domain

// Student is a learner. Courses is derived from the enrollment set.
type Student struct {
	ID        int64
	FirstName string
	LastName  string
	Courses   []Course
}

// NewStudent carries the fields required to create a student.
type NewStudent struct {
	FirstName string
	LastName  string
}

// StudentUpdate carries optional fields to update a student.
type StudentUpdate struct {
	FirstName *string
	LastName  *string
}

// Validate checks the creation payload.
func (n NewStudent) Validate() error {
	if err := validateName("first_name", n.FirstName); err != nil {
		return err
	}
	return validateName("last_name", n.LastName)
}

// Validate checks the fields that are present.
func (u StudentUpdate) Validate() error {
	if u.FirstName != nil {
		if err := validateName("first_name", *u.FirstName); err != nil {
			return err
		}
	}
	if u.LastName != nil {
		return validateName("last_name", *u.LastName)
	}
	return nil
}

// Empty reports whether the update changes nothing.
func (u StudentUpdate) Empty() bool { return u.FirstName == nil && u.LastName == nil }

// Apply overlays the present fields onto s and reports whether anything changed.
func (u StudentUpdate) Apply(s *Student) bool {
	changed := false
	if u.FirstName != nil && *u.FirstName != s.FirstName {
		s.FirstName = *u.FirstName
		changed = true
	}
	if u.LastName != nil && *u.LastName != s.LastName {
		s.LastName = *u.LastName
		changed = true
	}
	return changed
}

// EnrolledIn reports whether courseID is among the student's loaded courses.
func (s *Student) EnrolledIn(courseID int64) bool {
	for _, c := range s.Courses {
		if c.ID == courseID {
			return true
		}
	}
	return false
}
