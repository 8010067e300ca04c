// Package openmeteo implements queries to the Open-Meteo APIs: place name
// search, time zone inference and the daily and hourly forecast used to judge
// the light. Coordinates are WGS84 degrees; forecast times are local to the
// requested time zone.
package openmeteo
