//go:build ignore

package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
)

// Утилита для ручного тестирования: наполняет запущенный сервис
// краудсорсинговыми местами вокруг Цюриха и запускает цикл агрегации.

type addSpotRequest struct {
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Name *string `json:"name,omitempty"`
}

func ptr(s string) *string {
	return &s
}

func main() {
	baseURL := flag.String("api", "http://localhost:8080", "Parking microservice base URL")
	flag.Parse()

	spots := []addSpotRequest{
		{Lat: 47.3769, Lng: 8.5417, Name: ptr("Parkplatz Bahnhofstrasse")},
		{Lat: 47.3721, Lng: 8.5423, Name: ptr("Parkhaus Gessnerallee")},
		{Lat: 47.3786, Lng: 8.5399},
	}

	for _, spot := range spots {
		payload, err := json.Marshal(spot)
		if err != nil {
			log.Fatalf("Failed to marshal spot: %v", err)
		}

		resp, err := http.Post(*baseURL+"/api/v1/spots", "application/json", bytes.NewReader(payload))
		if err != nil {
			log.Fatalf("Failed to add spot: %v", err)
		}
		resp.Body.Close()
		fmt.Printf("Added spot (%.4f, %.4f): %s\n", spot.Lat, spot.Lng, resp.Status)
	}

	// Цикл агрегации вокруг центра Цюриха
	payload, _ := json.Marshal(map[string]float64{"lat": 47.3769, "lng": 8.5417})
	resp, err := http.Post(*baseURL+"/api/v1/spots/refresh", "application/json", bytes.NewReader(payload))
	if err != nil {
		log.Fatalf("Failed to refresh spots: %v", err)
	}
	defer resp.Body.Close()

	var result struct {
		Data struct {
			Total int `json:"total"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Fatalf("Failed to decode refresh response: %v", err)
	}
	fmt.Printf("Refresh completed, collection size: %d\n", result.Data.Total)
}
