package dto

import "github.com/shopspring/decimal"

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// AuthResponse carries the issued bearer token.
type AuthResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// DashboardResponse summarizes a user's accounts and recent activity.
type DashboardResponse struct {
	TotalBalance       decimal.Decimal `json:"totalBalance"`
	TotalAccounts      int             `json:"totalAccounts"`
	RecentTransactions int64           `json:"recentTransactions"`
	Pending            int64           `json:"pending"`
}
