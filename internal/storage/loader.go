package storage

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/denisok6893-rgb/property-matchmaking/internal/domain"
	"github.com/denisok6893-rgb/property-matchmaking/internal/records"
)

// LoadPropertiesFromFile reads properties from a JSON or YAML file. Records
// without an id get a generated one.
func LoadPropertiesFromFile(path string) ([]domain.Property, error) {
	raws, err := records.ReadFile(path)
	if err != nil {
		return nil, err
	}
	props, err := records.DecodeProperties(raws)
	if err != nil {
		return nil, fmt.Errorf("decode properties: %w", err)
	}
	for i := range props {
		if props[i].ID == "" {
			props[i].ID = uuid.NewString()
		}
	}
	return props, nil
}

// LoadClientsFromFile reads clients from a JSON or YAML file. Records
// without an id get a generated one.
func LoadClientsFromFile(path string) ([]domain.Client, error) {
	raws, err := records.ReadFile(path)
	if err != nil {
		return nil, err
	}
	clients, err := records.DecodeClients(raws)
	if err != nil {
		return nil, fmt.Errorf("decode clients: %w", err)
	}
	for i := range clients {
		if clients[i].ID == "" {
			clients[i].ID = uuid.NewString()
		}
	}
	return clients, nil
}
