// Package config handles loading and validating the SWH sizing service
// configuration.
//
// This package manages:
//   - Loading configuration from YAML files
//   - Overriding with environment variables
//   - Validation of required fields
//   - Default value handling
//
// Sizing defaults are the NECB 2011 values: 60 °C service temperature,
// 15 °C mains, 0.45 W/(m²·K) tank skin, 3/4" distribution pipe and a
// 179532 Pa constant-speed pump when the pump is not auto-sized.
//
// Security Considerations:
//   - Broker passwords and InfluxDB tokens should be set via environment variables
//   - The config file should have restricted permissions (0600)
//
// Usage:
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Standards.Path)
package config
