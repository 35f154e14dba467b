package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SendPayload is the body of POST /transactions
type SendPayload struct {
	ReceiverID string `json:"receiverId"`
	Amount     int64  `json:"amount"`
	Message    string `json:"message"`
}

// TestResult contains metrics for a single request
type TestResult struct {
	Sender       int64
	StatusCode   int
	ResponseTime time.Duration
	Replay       bool
	Error        error
}

// TestStats contains aggregated test statistics
type TestStats struct {
	TotalRequests int
	TotalTime     time.Duration
	ResponseTimes []time.Duration
	StatusCounts  map[int]int
	SenderStats   map[int64]int
	ErrorCounts   map[string]int
	Replays       int
	Lock          sync.Mutex
}

func main() {
	concurrency := flag.Int("c", 5, "Number of concurrent goroutines")
	totalRequests := flag.Int("n", 100, "Total number of transfers to send")
	profilesStr := flag.String("p", "1,2,3,4", "Comma-separated profile ids of one workspace")
	baseURL := flag.String("url", "http://localhost:8080", "Base URL for the API")
	secret := flag.String("secret", "dev-secret", "HS256 secret used to sign member tokens")
	minAmount := flag.Int64("min", 5, "Smallest amount to send")
	maxAmount := flag.Int64("max", 20, "Largest amount to send")
	replayPct := flag.Int("replay", 10, "Percentage of requests that resend an earlier idempotency key")
	delayMs := flag.Int("delay", 50, "Delay between requests in milliseconds")
	flag.Parse()

	var profiles []int64
	for _, idStr := range strings.Split(*profilesStr, ",") {
		if id, err := strconv.ParseInt(strings.TrimSpace(idStr), 10, 64); err == nil && id > 0 {
			profiles = append(profiles, id)
		}
	}
	if len(profiles) < 2 {
		fmt.Println("At least two profile ids are required")
		return
	}
	if *maxAmount < *minAmount {
		*maxAmount = *minAmount
	}

	tokens := make(map[int64]string, len(profiles))
	for _, id := range profiles {
		token, err := signToken(*secret, id)
		if err != nil {
			fmt.Printf("Failed to sign token for profile %d: %v\n", id, err)
			return
		}
		tokens[id] = token
	}

	fmt.Printf("Sending %d transfers across %d profiles: %v\n", *totalRequests, len(profiles), profiles)
	fmt.Printf("Concurrency: %d goroutines, delay %d ms, replays %d%%\n", *concurrency, *delayMs, *replayPct)

	stats := &TestStats{
		TotalRequests: *totalRequests,
		ResponseTimes: make([]time.Duration, 0, *totalRequests),
		StatusCounts:  make(map[int]int),
		SenderStats:   make(map[int64]int),
		ErrorCounts:   make(map[string]int),
	}

	results := make(chan TestResult, *totalRequests)
	jobs := make(chan int, *totalRequests)

	var wg sync.WaitGroup
	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := &worker{
				client:    &http.Client{Timeout: 10 * time.Second},
				baseURL:   *baseURL,
				profiles:  profiles,
				tokens:    tokens,
				minAmount: *minAmount,
				maxAmount: *maxAmount,
				replayPct: *replayPct,
				delay:     time.Duration(*delayMs) * time.Millisecond,
			}
			w.run(jobs, results)
		}()
	}

	go func() {
		for i := 0; i < *totalRequests; i++ {
			jobs <- i
		}
		close(jobs)
	}()

	collected := make(chan struct{})
	go func() {
		defer close(collected)
		for result := range results {
			stats.Lock.Lock()
			stats.StatusCounts[result.StatusCode]++
			stats.SenderStats[result.Sender]++
			stats.ResponseTimes = append(stats.ResponseTimes, result.ResponseTime)
			if result.Replay {
				stats.Replays++
			}
			if result.Error != nil {
				stats.ErrorCounts[result.Error.Error()]++
			}
			stats.Lock.Unlock()
		}
	}()

	startTime := time.Now()
	wg.Wait()
	close(results)
	<-collected
	stats.TotalTime = time.Since(startTime)

	printResults(stats)
}

func signToken(secret string, profileID int64) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(profileID, 10),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

type worker struct {
	client    *http.Client
	baseURL   string
	profiles  []int64
	tokens    map[int64]string
	minAmount int64
	maxAmount int64
	replayPct int
	delay     time.Duration

	sent []sentRequest
}

type sentRequest struct {
	sender int64
	key    string
	body   []byte
}

func (w *worker) run(jobs <-chan int, results chan<- TestResult) {
	for range jobs {
		if w.delay > 0 {
			time.Sleep(w.delay)
		}
		results <- w.send(w.next())
	}
}

// next picks a fresh transfer or, sometimes, a resend of an earlier one
func (w *worker) next() sentRequest {
	if len(w.sent) > 0 && rand.Intn(100) < w.replayPct {
		return w.sent[rand.Intn(len(w.sent))]
	}

	sender := w.profiles[rand.Intn(len(w.profiles))]
	receiver := sender
	for receiver == sender {
		receiver = w.profiles[rand.Intn(len(w.profiles))]
	}

	body, _ := json.Marshal(SendPayload{
		ReceiverID: strconv.FormatInt(receiver, 10),
		Amount:     w.minAmount + rand.Int63n(w.maxAmount-w.minAmount+1),
		Message:    "load test",
	})
	req := sentRequest{sender: sender, key: uuid.NewString(), body: body}
	w.sent = append(w.sent, req)
	return req
}

func (w *worker) send(s sentRequest) TestResult {
	result := TestResult{Sender: s.sender}

	req, err := http.NewRequest(http.MethodPost, w.baseURL+"/transactions", bytes.NewReader(s.body))
	if err != nil {
		result.Error = err
		return result
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+w.tokens[s.sender])
	req.Header.Set("Idempotency-Key", s.key)

	start := time.Now()
	resp, err := w.client.Do(req)
	result.ResponseTime = time.Since(start)
	if err != nil {
		result.Error = err
		return result
	}
	defer resp.Body.Close()

	result.StatusCode = resp.StatusCode
	result.Replay = resp.StatusCode == http.StatusOK
	if resp.StatusCode >= 500 {
		result.Error = fmt.Errorf("HTTP status code %d", resp.StatusCode)
	}
	return result
}

func printResults(stats *TestStats) {
	times := stats.ResponseTimes
	sort.Slice(times, func(i, j int) bool { return times[i] < times[j] })

	var total time.Duration
	for _, t := range times {
		total += t
	}
	percentile := func(p int) time.Duration {
		if len(times) == 0 {
			return 0
		}
		return times[len(times)*p/100]
	}

	fmt.Println("\n================= TEST RESULTS =================")
	fmt.Printf("Total Requests:   %d\n", stats.TotalRequests)
	fmt.Printf("Total Test Time:  %.2f seconds\n", stats.TotalTime.Seconds())
	fmt.Printf("Throughput:       %.2f req/s\n", float64(stats.TotalRequests)/stats.TotalTime.Seconds())
	fmt.Printf("Replayed (200):   %d\n", stats.Replays)

	fmt.Println("\n----------------- STATUS CODES -----------------")
	codes := make([]int, 0, len(stats.StatusCounts))
	for code := range stats.StatusCounts {
		codes = append(codes, code)
	}
	sort.Ints(codes)
	for _, code := range codes {
		label := http.StatusText(code)
		if code == 0 {
			label = "transport error"
		}
		fmt.Printf("%3d %-22s %d\n", code, label, stats.StatusCounts[code])
	}

	fmt.Println("\n----------------- RESPONSE TIMES -----------------")
	if len(times) > 0 {
		fmt.Printf("Average: %v\n", total/time.Duration(len(times)))
		fmt.Printf("Min:     %v\n", times[0])
		fmt.Printf("Max:     %v\n", times[len(times)-1])
	}
	fmt.Printf("P50:     %v\n", percentile(50))
	fmt.Printf("P95:     %v\n", percentile(95))
	fmt.Printf("P99:     %v\n", percentile(99))

	fmt.Println("\n----------------- SENDERS -----------------")
	for sender, count := range stats.SenderStats {
		fmt.Printf("Profile %d: %d requests\n", sender, count)
	}

	if len(stats.ErrorCounts) > 0 {
		fmt.Println("\n----------------- ERRORS -----------------")
		for msg, count := range stats.ErrorCounts {
			fmt.Printf("%-40s: %d\n", msg, count)
		}
	}
	fmt.Println("================================================")
}
