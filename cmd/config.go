package cmd

type Config struct {
	HTTPPort             string
	DBHost               string
	DBPort               string
	DBUser               string
	DBPassword           string
	DBName               string
	DBSslMode            string
	AdvisoryServiceURL   string
	NotifyServiceURL     string
	CartonDimDivisor     string
	DefaultUnitWeightKg  string
	DefaultUnitVolumeCm3 string
	StaleRunThreshold    string
}
