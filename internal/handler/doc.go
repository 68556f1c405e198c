// Package handler contains the HTTP handlers owned by the redo service.
package handler
