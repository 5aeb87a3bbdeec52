package types

type ServerStatus struct {
	Status        string `json:"status"`
	ServerVersion string `json:"serverVersion"`
	Deployment    string `json:"deployment"`
	ModuleAddress string `json:"moduleAddress"`
}
