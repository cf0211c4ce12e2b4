package handlers

import "academy-service/internal/domain"

type teacherRequest struct {
	Name string `json:"name" validate:"required,max=60"`
}

type teacherUpdateRequest struct {
	Name *string `json:"name" validate:"omitnil,min=1,max=60"`
}

type studentRequest struct {
	FirstName string `json:"first_name" validate:"required,max=60"`
	LastName  string `json:"last_name" validate:"required,max=60"`
}

type studentUpdateRequest struct {
	FirstName *string `json:"first_name" validate:"omitnil,min=1,max=60"`
	LastName  *string `json:"last_name" validate:"omitnil,min=1,max=60"`
}

type courseRequest struct {
	Title string `json:"title" validate:"required,max=60"`
}

type courseUpdateRequest struct {
	Title *string `json:"title" validate:"omitnil,min=1,max=60"`
}

type teacherSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type teacherDetail struct {
	ID      int64           `json:"id"`
	Name    string          `json:"name"`
	Courses []courseSummary `json:"courses"`
}

type studentSummary struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type studentDetail struct {
	ID        int64           `json:"id"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Courses   []courseSummary `json:"courses"`
}

type courseSummary struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	TeacherID *int64 `json:"teacher_id"`
}

type courseDetail struct {
	ID       int64            `json:"id"`
	Title    string           `json:"title"`
	Teacher  *teacherSummary  `json:"teacher"`
	Students []studentSummary `json:"students"`
}

func toTeacherSummary(t domain.Teacher) teacherSummary {
	return teacherSummary{ID: t.ID, Name: t.Name}
}

func toTeacherDetail(t *domain.Teacher) teacherDetail {
	return teacherDetail{ID: t.ID, Name: t.Name, Courses: toCourseSummaries(t.Courses)}
}

func toStudentSummary(s domain.Student) studentSummary {
	return studentSummary{ID: s.ID, FirstName: s.FirstName, LastName: s.LastName}
}

func toStudentDetail(s *domain.Student) studentDetail {
	return studentDetail{ID: s.ID, FirstName: s.FirstName, LastName: s.LastName, Courses: toCourseSummaries(s.Courses)}
}

func toCourseSummary(c domain.Course) courseSummary {
	return courseSummary{ID: c.ID, Title: c.Title, TeacherID: c.TeacherID}
}

func toCourseSummaries(cs []domain.Course) []courseSummary {
	out := make([]courseSummary, 0, len(cs))
	for _, c := range cs {
		out = append(out, toCourseSummary(c))
	}
	return out
}

func toCourseDetail(c *domain.Course) courseDetail {
	out := courseDetail{ID: c.ID, Title: c.Title, Students: make([]studentSummary, 0, len(c.Students))}
	if c.Teacher != nil {
		t := toTeacherSummary(*c.Teacher)
		out.Teacher = &t
	}
	for _, s := range c.Students {
		out.Students = append(out.Students, toStudentSummary(s))
	}
	return out
}

func (r teacherUpdateRequest) toDomain() domain.TeacherUpdate {
	return domain.TeacherUpdate{Name: r.Name}
}

func (r studentUpdateRequest) toDomain() domain.StudentUpdate {
	return domain.StudentUpdate{FirstName: r.FirstName, LastName: r.LastName}
}

func (r courseUpdateRequest) toDomain() domain.CourseUpdate {
	return domain.CourseUpdate{Title: r.Title}
}
