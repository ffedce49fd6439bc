package commands

import (
	"context"
	"errors"
	"os"
	"runtime"
	"time"

	"github.com/mobile-next/touchemu/config"
	"github.com/mobile-next/touchemu/devices/wda"
	"github.com/mobile-next/touchemu/utils"
)

// DoctorTimeout bounds how long the doctor waits for WebDriverAgent.
const DoctorTimeout = 3 * time.Second

type DoctorInfo struct {
	Version         string `json:"version"`
	OS              string `json:"os"`
	ConfigPath      string `json:"config_path"`
	ConfigFound     bool   `json:"config_found"`
	ConfigError     string `json:"config_error,omitempty"`
	ListenAddress   string `json:"listen_address"`
	ListenAvailable bool   `json:"listen_available"`
	WDAAddress      string `json:"wda_address,omitempty"`
	WDAReachable    *bool  `json:"wda_reachable,omitempty"`
	WDAError        string `json:"wda_error,omitempty"`
}

// DoctorRequest names what the doctor should check
type DoctorRequest struct {
	Version       string
	ConfigPath    string
	ListenAddress string
	WDAAddress    string
}

func checkWebDriverAgent(addr string) error {
	ctx, cancel := context.WithTimeout(context.Background(), DoctorTimeout)
	defer cancel()
	return wda.NewWdaClient(addr).WaitForWebDriverAgent(ctx)
}

// DoctorCommand checks the config file, the listen address and the optional
// WebDriverAgent endpoint.
func DoctorCommand(req DoctorRequest) *CommandResponse {
	info := DoctorInfo{
		Version:       req.Version,
		OS:            runtime.GOOS,
		ConfigPath:    req.ConfigPath,
		ListenAddress: req.ListenAddress,
		WDAAddress:    req.WDAAddress,
	}

	if _, err := os.Stat(req.ConfigPath); err == nil {
		info.ConfigFound = true
	} else if !errors.Is(err, os.ErrNotExist) {
		info.ConfigError = err.Error()
	}
	if info.ConfigFound {
		if _, err := config.Load(req.ConfigPath); err != nil {
			info.ConfigError = err.Error()
		}
	}

	info.ListenAvailable = utils.IsAddressAvailable(req.ListenAddress)

	if req.WDAAddress != "" {
		reachable := true
		if err := checkWebDriverAgent(req.WDAAddress); err != nil {
			reachable = false
			info.WDAError = err.Error()
		}
		info.WDAReachable = &reachable
	}

	return NewSuccessResponse(info)
}
