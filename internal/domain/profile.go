package domain

import (
	"context"
	"slices"
	"strings"
	"time"
)

// Profile is the extended per-user record. Education and Experience are
// embedded, most recent first.
type Profile struct {
	ID             string       `json:"id"`
	User           ProfileUser  `json:"user"`
	Handle         string       `json:"handle"`
	Company        string       `json:"company,omitempty"`
	Website        string       `json:"website,omitempty"`
	Location       string       `json:"location,omitempty"`
	Status         string       `json:"status"`
	Bio            string       `json:"bio,omitempty"`
	GithubUsername string       `json:"githubUserName,omitempty"`
	Skills         []string     `json:"skills"`
	Social         SocialLinks  `json:"social"`
	Education      []Education  `json:"education"`
	Experience     []Experience `json:"experience"`
	CreatedAt      time.Time    `json:"date"`
}

// ProfileUser is the owning user, populated with name and avatar on reads.
type ProfileUser struct {
	ID     string `json:"id"`
	Name   string `json:"name,omitempty"`
	Avatar string `json:"avatar,omitempty"`
}

type SocialLinks struct {
	Youtube   string `json:"youtube,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Linkedin  string `json:"linkedin,omitempty"`
}

type Education struct {
	ID           string     `json:"id"`
	Institute    string     `json:"institute"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"fieldOfStudy"`
	From         time.Time  `json:"from"`
	To           *time.Time `json:"to,omitempty"`
	Current      bool       `json:"current"`
	Description  string     `json:"description,omitempty"`
}

type Experience struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location,omitempty"`
	From        time.Time  `json:"from"`
	To          *time.Time `json:"to,omitempty"`
	Current     bool       `json:"current"`
	Description string     `json:"description,omitempty"`
}

// ProfileInput is the raw create/edit payload. Skills is a slash or comma
// separated string that is split after validation.
type ProfileInput struct {
	Handle         string `json:"handle" validate:"notblank,min=2,max=40"`
	Company        string `json:"company"`
	Website        string `json:"website" validate:"omitempty,url"`
	Location       string `json:"location"`
	Status         string `json:"status" validate:"notblank"`
	Bio            string `json:"bio"`
	GithubUsername string `json:"githubUserName"`
	Skills         string `json:"skills" validate:"notblank"`
	Youtube        string `json:"youtube" validate:"omitempty,url"`
	Facebook       string `json:"facebook" validate:"omitempty,url"`
	Twitter        string `json:"twitter" validate:"omitempty,url"`
	Instagram      string `json:"instagram" validate:"omitempty,url"`
	Linkedin       string `json:"linkedin" validate:"omitempty,url"`
}

type EducationInput struct {
	Institute    string `json:"institute" validate:"notblank"`
	Degree       string `json:"degree" validate:"notblank"`
	FieldOfStudy string `json:"fieldOfStudy" validate:"notblank"`
	From         string `json:"from" validate:"notblank,isodate"`
	To           string `json:"to" validate:"omitempty,isodate"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

type ExperienceInput struct {
	Title       string `json:"title" validate:"notblank"`
	Company     string `json:"company" validate:"notblank"`
	Location    string `json:"location"`
	From        string `json:"from" validate:"notblank,isodate"`
	To          string `json:"to" validate:"omitempty,isodate"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

func (in *ProfileInput) Normalize() {
	for _, f := range []*string{
		&in.Handle, &in.Company, &in.Website, &in.Location, &in.Status, &in.Bio,
		&in.GithubUsername, &in.Skills, &in.Youtube, &in.Facebook, &in.Twitter,
		&in.Instagram, &in.Linkedin,
	} {
		*f = strings.TrimSpace(*f)
	}
}

func (in *EducationInput) Normalize() {
	for _, f := range []*string{&in.Institute, &in.Degree, &in.FieldOfStudy, &in.From, &in.To, &in.Description} {
		*f = strings.TrimSpace(*f)
	}
}

func (in *ExperienceInput) Normalize() {
	for _, f := range []*string{&in.Title, &in.Company, &in.Location, &in.From, &in.To, &in.Description} {
		*f = strings.TrimSpace(*f)
	}
}

// ProfileFields is a partial update: nil means "leave untouched".
type ProfileFields struct {
	Handle         *string
	Company        *string
	Website        *string
	Location       *string
	Status         *string
	Bio            *string
	GithubUsername *string
	Skills         []string
	Social         SocialFields
}

type SocialFields struct {
	Youtube   *string `json:"youtube,omitempty"`
	Facebook  *string `json:"facebook,omitempty"`
	Twitter   *string `json:"twitter,omitempty"`
	Instagram *string `json:"instagram,omitempty"`
	Linkedin  *string `json:"linkedin,omitempty"`
}

// NewProfileFields keeps only the non-empty fields of the input. Empty
// strings are treated the same as absent ones.
func NewProfileFields(in ProfileInput) ProfileFields {
	f := ProfileFields{
		Handle:         present(in.Handle),
		Company:        present(in.Company),
		Website:        present(in.Website),
		Location:       present(in.Location),
		Status:         present(in.Status),
		Bio:            present(in.Bio),
		GithubUsername: present(in.GithubUsername),
		Social: SocialFields{
			Youtube:   present(in.Youtube),
			Facebook:  present(in.Facebook),
			Twitter:   present(in.Twitter),
			Instagram: present(in.Instagram),
			Linkedin:  present(in.Linkedin),
		},
	}
	if strings.TrimSpace(in.Skills) != "" {
		f.Skills = SplitSkills(in.Skills)
	}
	return f
}

// SplitSkills turns "Go/SQL, go//Docker" into an ordered set of trimmed
// tokens: [Go SQL go Docker]. Both "/" and "," separate skills. Matching is
// case sensitive.
func SplitSkills(raw string) []string {
	skills := make([]string, 0)
	for _, token := range strings.FieldsFunc(raw, isSkillSeparator) {
		token = strings.TrimSpace(token)
		if token == "" || slices.Contains(skills, token) {
			continue
		}
		skills = append(skills, token)
	}
	return skills
}

func isSkillSeparator(r rune) bool {
	return r == '/' || r == ','
}

// Apply merges f into p. Skills, when present, replace the previous set.
func (p *Profile) Apply(f ProfileFields) {
	assign(&p.Handle, f.Handle)
	assign(&p.Company, f.Company)
	assign(&p.Website, f.Website)
	assign(&p.Location, f.Location)
	assign(&p.Status, f.Status)
	assign(&p.Bio, f.Bio)
	assign(&p.GithubUsername, f.GithubUsername)
	if f.Skills != nil {
		p.Skills = slices.Clone(f.Skills)
	}
	assign(&p.Social.Youtube, f.Social.Youtube)
	assign(&p.Social.Facebook, f.Social.Facebook)
	assign(&p.Social.Twitter, f.Social.Twitter)
	assign(&p.Social.Instagram, f.Social.Instagram)
	assign(&p.Social.Linkedin, f.Social.Linkedin)
}

// AddEducation inserts e at the head of the sequence.
func (p *Profile) AddEducation(e Education) {
	p.Education = slices.Insert(p.Education, 0, e)
}

// RemoveEducation excises the entry with the given id. It reports whether
// an entry was removed; a missing id leaves the sequence unchanged.
func (p *Profile) RemoveEducation(id string) bool {
	var removed bool
	p.Education, removed = removeByID(p.Education, id, func(e Education) string { return e.ID })
	return removed
}

func (p *Profile) AddExperience(e Experience) {
	p.Experience = slices.Insert(p.Experience, 0, e)
}

func (p *Profile) RemoveExperience(id string) bool {
	var removed bool
	p.Experience, removed = removeByID(p.Experience, id, func(e Experience) string { return e.ID })
	return removed
}

func removeByID[T any](items []T, id string, key func(T) string) ([]T, bool) {
	idx := slices.IndexFunc(items, func(item T) bool { return key(item) == id })
	if idx < 0 {
		return items, false
	}
	return slices.Delete(items, idx, idx+1), true
}

func present(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func assign(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*Profile, error)
	GetByHandle(ctx context.Context, handle string) (*Profile, error)
	List(ctx context.Context) ([]Profile, error)
	Create(ctx context.Context, profile *Profile) error
	Update(ctx context.Context, userID string, fields ProfileFields) (*Profile, error)
	SaveEntries(ctx context.Context, profile *Profile) error
	DeleteByUserID(ctx context.Context, userID string) error
}

type ProfileUsecase interface {
	GetOwnProfile(ctx context.Context, userID string) (*Profile, error)
	ListAllProfiles(ctx context.Context) ([]Profile, error)
	GetProfileByHandle(ctx context.Context, handle string) (*Profile, error)
	GetProfileByUserID(ctx context.Context, userID string) (*Profile, error)
	UpsertProfile(ctx context.Context, userID string, input ProfileInput) (*Profile, error)
	AddEducation(ctx context.Context, userID string, input EducationInput) (*Profile, error)
	RemoveEducation(ctx context.Context, userID, educationID string) (*Profile, error)
	AddExperience(ctx context.Context, userID string, input ExperienceInput) (*Profile, error)
	RemoveExperience(ctx context.Context, userID, experienceID string) (*Profile, error)
	DeleteOwnProfileAndAccount(ctx context.Context, userID string) error
}
