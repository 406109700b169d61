package model

type AccessToken struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type SignupRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
	Country     string `json:"country"`
}

type SignupResponse struct {
	User User `json:"user"`
}

type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SigninResponse struct {
	User        User   `json:"user"`
	AccessToken string `json:"access_token"`
}
