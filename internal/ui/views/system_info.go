package views

import "github.com/pterm/pterm"

type SystemInfoItem struct {
	ConfigPath string
	DBPath     string
	DBExists   bool // true = Found, false = Not Found
	APIBaseURL string
	HasToken   bool
	LogLevel   string
	AppDataDir string
}

func RenderSystemInfo(data SystemInfoItem) error {
	dbStatus := pterm.Green("Found")
	if !data.DBExists {
		dbStatus = pterm.Red("Not Found (Will be created)")
	}

	token := pterm.Gray("not set")
	if data.HasToken {
		token = pterm.Green("set")
	}

	tableData := pterm.TableData{
		{"Configuration File", data.ConfigPath},
		{"API Base URL", data.APIBaseURL},
		{"API Token", token},
		{"Local Database Path", data.DBPath},
		{"Local Database Status", dbStatus},
		{"Log Level", data.LogLevel},
		{"AppData Directory", data.AppDataDir},
	}

	return pterm.DefaultTable.WithData(tableData).Render()
}
