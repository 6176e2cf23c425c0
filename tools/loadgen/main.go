// Command loadgen fires synthetic order batches at a running SellerSync
// instance. Useful for soak testing the ingestion path and for seeding a
// development database with realistic data.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

var platforms = []string{"shopee", "lazada", "tiktok", "tokopedia"}

var statuses = []string{"UNPAID", "PAID", "SHIPPED", "COMPLETED", "CANCELLED"}

type transaction struct {
	OrderID        string `json:"order_id"`
	OrderStatus    string `json:"order_status"`
	TotalAmount    string `json:"total_amount"`
	Currency       string `json:"currency"`
	CreateTime     int64  `json:"create_time"`
	UpdateTime     int64  `json:"update_time"`
	BuyerName      string `json:"buyer_name"`
	TrackingNumber string `json:"tracking_number,omitempty"`
	ItemsCount     int    `json:"items_count"`
	Items          []item `json:"items"`
}

type item struct {
	ProductID     string `json:"product_id"`
	ProductName   string `json:"product_name"`
	SkuID         string `json:"sku_id"`
	SellerSku     string `json:"seller_sku"`
	Quantity      int    `json:"quantity"`
	OriginalPrice string `json:"original_price"`
	Price         string `json:"price"`
}

type batch struct {
	GroupID      string        `json:"group_id"`
	ShopID       string        `json:"shop_id"`
	ShopName     string        `json:"shop_name"`
	Platform     string        `json:"platform"`
	Transactions []transaction `json:"transactions"`
}

func main() {
	var (
		baseURL     = flag.String("url", "http://localhost:8080", "base URL of the SellerSync API")
		groupID     = flag.String("group", "f1b2c3d4-0000-4000-8000-000000000001", "group id to ingest under")
		secret      = flag.String("secret", "dev-secret-change-me", "group shared secret")
		shops       = flag.Int("shops", 5, "number of distinct shops")
		batchSize   = flag.Int("batch-size", 20, "transactions per batch")
		batches     = flag.Int("batches", 100, "total batches to send")
		concurrency = flag.Int("concurrency", 4, "concurrent senders")
	)
	flag.Parse()

	endpoint := *baseURL + "/api/v1/webhook/orders"
	client := &http.Client{Timeout: 30 * time.Second}

	var sent, failed atomic.Int64
	work := make(chan int)
	var wg sync.WaitGroup

	start := time.Now()
	for w := 0; w < *concurrency; w++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for n := range work {
				b := makeBatch(rng, *groupID, n%*shops, *batchSize)
				if err := send(client, endpoint, *secret, b); err != nil {
					failed.Add(1)
					fmt.Fprintf(os.Stderr, "batch %d: %v\n", n, err)
					continue
				}
				sent.Add(1)
			}
		}(time.Now().UnixNano() + int64(w))
	}

	for n := 0; n < *batches; n++ {
		work <- n
	}
	close(work)
	wg.Wait()

	elapsed := time.Since(start)
	fmt.Printf("sent %d batches (%d failed) in %s, %.1f batches/s\n",
		sent.Load(), failed.Load(), elapsed.Round(time.Millisecond),
		float64(sent.Load())/elapsed.Seconds())
}

func makeBatch(rng *rand.Rand, groupID string, shop, size int) batch {
	platform := platforms[shop%len(platforms)]
	shopID := fmt.Sprintf("shop-%03d", shop)

	transactions := make([]transaction, 0, size)
	now := time.Now().Unix()
	for i := 0; i < size; i++ {
		itemCount := 1 + rng.Intn(4)
		items := make([]item, 0, itemCount)
		total := 0
		for j := 0; j < itemCount; j++ {
			qty := 1 + rng.Intn(3)
			price := (5 + rng.Intn(200)) * 1000
			total += qty * price
			items = append(items, item{
				ProductID:     fmt.Sprintf("P%05d", rng.Intn(10000)),
				ProductName:   fmt.Sprintf("Product %d", rng.Intn(10000)),
				SkuID:         fmt.Sprintf("SKU%06d", rng.Intn(100000)),
				SellerSku:     fmt.Sprintf("SS-%04d", rng.Intn(10000)),
				Quantity:      qty,
				OriginalPrice: fmt.Sprintf("%d", price+2000),
				Price:         fmt.Sprintf("%d", price),
			})
		}
		created := now - int64(rng.Intn(86400*30))
		transactions = append(transactions, transaction{
			// Reuse a bounded order id space so re-ingestion exercises
			// the upsert path, not just inserts.
			OrderID:     fmt.Sprintf("%s-ORD-%06d", shopID, rng.Intn(50000)),
			OrderStatus: statuses[rng.Intn(len(statuses))],
			TotalAmount: fmt.Sprintf("%d", total),
			Currency:    "IDR",
			CreateTime:  created,
			UpdateTime:  created + int64(rng.Intn(86400)),
			BuyerName:   fmt.Sprintf("Buyer %d", rng.Intn(1000)),
			ItemsCount:  itemCount,
			Items:       items,
		})
	}

	return batch{
		GroupID:      groupID,
		ShopID:       shopID,
		ShopName:     fmt.Sprintf("Shop %03d", shop),
		Platform:     platform,
		Transactions: transactions,
	}
}

func send(client *http.Client, endpoint, secret string, b batch) error {
	body, err := json.Marshal(b)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Group-Secret", secret)

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}
