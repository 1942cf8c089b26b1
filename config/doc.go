// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml (or ./config/config.yml) and
// validated using go-playground/validator struct tags. Defaults are applied
// after validation, so an empty section is always valid:
//
//	server:
//	  port: 16181
//	storage:
//	  path: ./data
//	cache:
//	  size: 256
//	logging:
//	  level: info
//	  format: json
//	gtfs:
//	  staticURL: https://example.org/gtfs.zip
//	  shapeDistUnit: km
//	gtfsrt:
//	  vehiclePositionsURL: https://example.org/vehicle-positions
//	  timeoutMS: 5000
package config
