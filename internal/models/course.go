package models

// Course is a read-only catalogue entry shown on the student screens
type Course struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Price        float64        `json:"price"`
	Rating       float64        `json:"rating"`
	ReviewCount  int            `json:"review_count"`
	GradientFrom string         `json:"gradient_from"`
	GradientTo   string         `json:"gradient_to"`
	Icon         string         `json:"icon"`
	Description  string         `json:"description"`
	Syllabus     []SyllabusItem `json:"syllabus"`
}

// SyllabusItem is one lesson of a course. Order within the course matters.
type SyllabusItem struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Duration string `json:"duration"`
	IsLocked bool   `json:"is_locked"`
}

const (
	CallToActionStart  = "Start Learning"
	CallToActionEnroll = "Enroll Now"
)

// FirstUnlocked returns the first lesson the student can open, if any
func (c *Course) FirstUnlocked() (SyllabusItem, bool) {
	for _, item := range c.Syllabus {
		if !item.IsLocked {
			return item, true
		}
	}
	return SyllabusItem{}, false
}

// CallToAction picks the label of the detail screen's main button.
// It depends only on whether the first lesson in sequence is open.
func (c *Course) CallToAction() string {
	if len(c.Syllabus) > 0 && !c.Syllabus[0].IsLocked {
		return CallToActionStart
	}
	return CallToActionEnroll
}

// Clone returns a deep copy so callers can't mutate shared catalogue data
func (c Course) Clone() Course {
	c.Syllabus = append([]SyllabusItem(nil), c.Syllabus...)
	return c
}
