package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// dateLayout is the wire format of project dates.
const dateLayout = "2006-01-02"

// --- Accounts ---

type registerRequest struct {
	Name       string `json:"name"       validate:"required"`
	Email      string `json:"email"      validate:"required,email"`
	Phone      string `json:"phone"      validate:"required,phone"`
	Experience int    `json:"experience" validate:"gte=0"`
	Password   string `json:"password"   validate:"required,password"`
	Role       string `json:"role"       validate:"required,oneof=builder manager"`
}

type loginRequest struct {
	UserID   string `json:"user_id"  validate:"required"`
	Password string `json:"password" validate:"required"`
}

type updateProfileRequest struct {
	Name       *string `json:"name"       validate:"omitempty,min=1"`
	Email      *string `json:"email"      validate:"omitempty,email"`
	Phone      *string `json:"phone"      validate:"omitempty,phone"`
	Experience *int    `json:"experience" validate:"omitempty,gte=0"`
	Password   *string `json:"password"   validate:"omitempty,password"`
}

type userResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Experience int    `json:"experience"`
	Role       string `json:"role"`
}

type authResponse struct {
	Token string        `json:"token,omitempty"`
	User  *userResponse `json:"user,omitempty"`
}

// --- Projects ---

type clientRequest struct {
	Name  string `json:"name"  validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required,phone"`
}

type createProjectRequest struct {
	Name        string        `json:"name"        validate:"required"`
	Description string        `json:"description"`
	StartDate   string        `json:"start_date"  validate:"required,datetime=2006-01-02"`
	EndDate     string        `json:"end_date"    validate:"required,datetime=2006-01-02"`
	Client      clientRequest `json:"client"      validate:"required"`
	Status      string        `json:"status"      validate:"omitempty,oneof=upcoming in_progress completed"`
	BuilderID   string        `json:"builder_id"  validate:"required"`
}

type updateProjectRequest struct {
	Name        *string        `json:"name"        validate:"omitempty,min=1"`
	Description *string        `json:"description"`
	StartDate   *string        `json:"start_date"  validate:"omitempty,datetime=2006-01-02"`
	EndDate     *string        `json:"end_date"    validate:"omitempty,datetime=2006-01-02"`
	Client      *clientRequest `json:"client"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type projectLinks struct {
	Self string `json:"self"`
}

type clientResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type projectResponse struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	StartDate   string         `json:"start_date"`
	EndDate     string         `json:"end_date"`
	Status      string         `json:"status"`
	Client      clientResponse `json:"client"`
	BuilderID   string         `json:"builder_id"`
	ManagerID   string         `json:"manager_id"`
	Links       projectLinks   `json:"_links"`
}

type listProjectsResponse struct {
	Data  []projectResponse `json:"data"`
	Count int               `json:"count"`
}
