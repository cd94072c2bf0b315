package models

import (
	"time"

	"gorm.io/gorm"
)

type TeamRegistration struct {
	ID               string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID           string    `gorm:"type:varchar(36);index" json:"user_id"`
	TeamName         string    `gorm:"type:varchar(255);not null" json:"team_name"`
	ProblemID        string    `gorm:"type:varchar(36);not null;index" json:"problem_id"`
	Member1Name      string    `gorm:"type:varchar(255);not null" json:"member1_name"`
	Member1Roll      string    `gorm:"type:varchar(50);not null" json:"member1_roll"`
	Member2Name      string    `gorm:"type:varchar(255)" json:"member2_name,omitempty"`
	Member2Roll      string    `gorm:"type:varchar(50)" json:"member2_roll,omitempty"`
	Member3Name      string    `gorm:"type:varchar(255)" json:"member3_name,omitempty"`
	Member3Roll      string    `gorm:"type:varchar(50)" json:"member3_roll,omitempty"`
	Member4Name      string    `gorm:"type:varchar(255)" json:"member4_name,omitempty"`
	Member4Roll      string    `gorm:"type:varchar(50)" json:"member4_roll,omitempty"`
	Year             string    `gorm:"type:varchar(20);not null" json:"year"`
	Department       string    `gorm:"type:varchar(100);not null" json:"department"`
	Phone            string    `gorm:"type:varchar(10);not null" json:"phone"`
	Email            string    `gorm:"type:varchar(255);not null" json:"email"`
	DocumentURL      string    `gorm:"type:varchar(512)" json:"document_url,omitempty"`
	DocumentFilename string    `gorm:"type:varchar(255)" json:"document_filename,omitempty"`
	CreatedAt        time.Time `gorm:"index" json:"created_at"`

	// Relations. No database constraint: deleting a problem keeps its registrations.
	Problem *ProblemStatement `gorm:"foreignKey:ProblemID;constraint:-" json:"problem,omitempty"`
}

func (t *TeamRegistration) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = newID()
	}
	return nil
}

// Member is one name/roll pair of a team.
type Member struct {
	Name string `json:"name"`
	Roll string `json:"roll"`
}

// Members returns the filled member slots in order.
func (t TeamRegistration) Members() []Member {
	slots := []Member{
		{Name: t.Member1Name, Roll: t.Member1Roll},
		{Name: t.Member2Name, Roll: t.Member2Roll},
		{Name: t.Member3Name, Roll: t.Member3Roll},
		{Name: t.Member4Name, Roll: t.Member4Roll},
	}
	members := make([]Member, 0, len(slots))
	for _, m := range slots {
		if m.Name == "" && m.Roll == "" {
			continue
		}
		members = append(members, m)
	}
	return members
}

// SetMembers fills the member columns from a slice; slots beyond the slice are cleared.
func (t *TeamRegistration) SetMembers(members []Member) {
	get := func(i int) Member {
		if i < len(members) {
			return members[i]
		}
		return Member{}
	}
	t.Member1Name, t.Member1Roll = get(0).Name, get(0).Roll
	t.Member2Name, t.Member2Roll = get(1).Name, get(1).Roll
	t.Member3Name, t.Member3Roll = get(2).Name, get(2).Roll
	t.Member4Name, t.Member4Roll = get(3).Name, get(3).Roll
}
