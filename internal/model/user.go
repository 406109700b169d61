package model

type GetMeRequest struct{}

type GetMeResponse User

type UpdateProfileRequest struct {
	DisplayName string `json:"display_name"`
	Country     string `json:"country"`
}

type UpdateProfileResponse struct{}

type GetMyBalanceRequest struct{}

type GetMyBalanceResponse struct {
	Balance uint64 `json:"balance"`
	Points  uint64 `json:"points"`
}

type GetLeaderboardRequest struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

type GetLeaderboardResponse struct {
	Users []User `json:"users"`
}

type GetUsersRequest struct {
	Query  string `json:"q"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
}

type GetUsersResponse struct {
	Users []User `json:"users"`
}

type GetUserRequest struct {
	UserID string `json:"user_id"`
}

type GetUserResponse User

type UpdateUserRequest struct {
	UserID      string  `json:"user_id"`
	DisplayName string  `json:"display_name"`
	Country     string  `json:"country"`
	Points      *uint64 `json:"points"`
	Rank        *int64  `json:"rank"`
}

type UpdateUserResponse struct{}

type BanUserRequest struct {
	UserID string `json:"user_id"`
	Banned bool   `json:"banned"`
	Reason string `json:"reason"`
}

type BanUserResponse struct{}
