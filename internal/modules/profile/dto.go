package profile

type UpdateProfileRequest struct {
	FullName  string `json:"full_name"`
	Specialty string `json:"specialty"`
	CRM       string `json:"crm"`
	Phone     string `json:"phone"`
	AvatarURL string `json:"avatar_url"`
}

type UpdatePlanRequest struct {
	Plan string `json:"plan" binding:"required"`
}
