package types

type NavbarData struct {
	IsAuthenticated bool
	IsGuest         bool
	UserID          string
	UserEmail       string
}

type NavbarDataSetter interface {
	SetNavbarData(data NavbarData)
}

// ToastData is a flash message carried across a redirect and rendered once.
type ToastData struct {
	Title       string
	Description string
	Severity    string
}

type ToastSetter interface {
	SetToasts(toasts []ToastData)
}

type BasePageData struct {
	Title  string
	Navbar NavbarData
	Toasts []ToastData
}

func (d *BasePageData) SetNavbarData(data NavbarData) {
	d.Navbar = data
}

func (d *BasePageData) SetToasts(toasts []ToastData) {
	d.Toasts = toasts
}

type HomePageData struct {
	BasePageData
	Cities            []*City
	TrendingQuestions []string
}

type HubPageData struct {
	BasePageData
	Modules  []Module
	Progress *UserProgress
}

type ChecklistPageData struct {
	BasePageData
	Modules     []Module
	Progress    *UserProgress
	Completed   int
	Total       int
	PercentDone int
}

type ModuleDetailPageData struct {
	BasePageData
	Module      Module
	Progress    *UserProgress
	ContextHint string
}

type DocumentsPageData struct {
	BasePageData
	Documents   []*Document
	Important   []*ImportantDocument
	Suggestions []DocumentSuggestion
}

type QAPageData struct {
	BasePageData
	Messages          []*ChatMessage
	TrendingQuestions []string
}

type CitiesPageData struct {
	BasePageData
	Cities []*City
}

type CityPageData struct {
	BasePageData
	City    *City
	Schools []*School
}

type SchoolPageData struct {
	BasePageData
	City   *City
	School *School
}

type ContactPageData struct {
	BasePageData
	Notice string
	Error  string
}

type LoginPageData struct {
	BasePageData
	Message string
	Error   string
	Email   string
}

type RegisterPageData struct {
	BasePageData
	GivenName   string
	FamilyName  string
	Email       string
	Error       string
	FieldErrors map[string]string
}

type ConfirmRegisterPageData struct {
	BasePageData
	Email   string
	Error   string
	Message string
}

type ProfilePageData struct {
	BasePageData
	UserID    string
	UserEmail string
	Progress  *UserProgress
	Completed int
	Total     int
}

type StaticPageData struct {
	BasePageData
}
