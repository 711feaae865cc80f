package main

import (
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"time"
)

var (
	baseURL = flag.String("url", "http://localhost:8080/orders/", "order endpoint")
	token   = flag.String("token", "", "admin session token")
	fixedID = flag.String("order", "3f9a4c1e-7b2d-4e8a-9c61-0d5b2a7e4f10", "existing order id")
)

func main() {
	flag.Parse()

	client := &http.Client{Timeout: 5 * time.Second}
	for {
		var wg sync.WaitGroup
		for range rand.Intn(10) {
			wg.Go(func() { doRequest(client) })
		}
		wg.Wait()
		time.Sleep(20 * time.Millisecond)
	}
}

func randomUUID() string {
	const hex = "0123456789abcdef"
	b := make([]byte, 36)
	for i := range b {
		switch i {
		case 8, 13, 18, 23:
			b[i] = '-'
		default:
			b[i] = hex[rand.Intn(len(hex))]
		}
	}
	return string(b)
}

// doRequest mostly reads the cached order and sometimes an unknown one.
func doRequest(client *http.Client) {
	id := *fixedID
	if rand.Intn(5) == 0 {
		id = randomUUID()
	}

	req, err := http.NewRequest(http.MethodGet, *baseURL+id, nil)
	if err != nil {
		fmt.Println("request error:", err)
		return
	}
	req.Header.Set("Authorization", "Bearer "+*token)

	resp, err := client.Do(req)
	if err != nil {
		fmt.Println("request error:", err)
		return
	}
	fmt.Println("GET", req.URL, "->", resp.Status)
	resp.Body.Close()
}
