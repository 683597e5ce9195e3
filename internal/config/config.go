package config

import (
	"os"
)

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	PublicURL       string
}

type StripeConfig struct {
	SecretKey  string
	SuccessURL string
	CancelURL  string
}

type Config struct {
	FrontendURL string
	R2          R2Config
	Stripe      StripeConfig
}

func LoadConfig() *Config {
	cfg := &Config{}

	cfg.FrontendURL = os.Getenv("FRONTEND_URL")

	// R2 config
	cfg.R2.AccountID = os.Getenv("R2_ACCOUNT_ID")
	cfg.R2.AccessKeyID = os.Getenv("R2_ACCESS_KEY_ID")
	cfg.R2.SecretAccessKey = os.Getenv("R2_SECRET_ACCESS_KEY")
	cfg.R2.Bucket = os.Getenv("R2_BUCKET")
	cfg.R2.PublicURL = os.Getenv("R2_PUBLIC_URL")

	// Stripe config
	cfg.Stripe.SecretKey = os.Getenv("STRIPE_SECRET_KEY")
	cfg.Stripe.SuccessURL = os.Getenv("STRIPE_SUCCESS_URL")
	cfg.Stripe.CancelURL = os.Getenv("STRIPE_CANCEL_URL")

	return cfg
}
