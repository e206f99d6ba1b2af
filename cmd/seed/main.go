// Command seed creates the order schema and optionally plants a demo
// cart, so a fresh environment can serve checkout immediately.
package main

import (
	"context"
	"database/sql"
	"flag"
	"log"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"

	"github.com/rl1809/storefront/internal/adapter/catalog"
	"github.com/rl1809/storefront/internal/adapter/storage"
	"github.com/rl1809/storefront/internal/core/service"
)

const ordersSchema = `
CREATE TABLE IF NOT EXISTS orders (
	id               CHAR(36) PRIMARY KEY,
	user_id          VARCHAR(128) NOT NULL,
	user_name        VARCHAR(255) NOT NULL DEFAULT '',
	user_email       VARCHAR(255) NOT NULL DEFAULT '',
	subtotal         BIGINT NOT NULL,
	service_fee      BIGINT NOT NULL,
	total            BIGINT NOT NULL,
	payment_method   VARCHAR(16) NOT NULL,
	delivery_address VARCHAR(512) NOT NULL,
	status           VARCHAR(16) NOT NULL,
	created_at       DATETIME NOT NULL
)`

const orderItemsSchema = `
CREATE TABLE IF NOT EXISTS order_items (
	order_id   CHAR(36) NOT NULL,
	product_id VARCHAR(64) NOT NULL,
	name       VARCHAR(255) NOT NULL,
	unit_price BIGINT NOT NULL,
	quantity   INT NOT NULL,
	line_total BIGINT NOT NULL,
	PRIMARY KEY (order_id, product_id)
)`

func main() {
	mysqlDSN := flag.String("mysql", "root:root@tcp(localhost:3306)/storefront?parseTime=true", "mysql dsn")
	redisAddr := flag.String("redis", "localhost:6379", "redis address")
	demoUser := flag.String("demo-user", "", "seed a demo cart for this user id")
	flag.Parse()

	ctx := context.Background()

	db, err := sql.Open("mysql", *mysqlDSN)
	if err != nil {
		log.Fatalf("open mysql: %v", err)
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("ping mysql: %v", err)
	}

	for _, stmt := range []string{ordersSchema, orderItemsSchema} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			log.Fatalf("create schema: %v", err)
		}
	}
	log.Println("order schema ready")

	if *demoUser == "" {
		return
	}

	rdb := redis.NewClient(&redis.Options{Addr: *redisAddr})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("ping redis: %v", err)
	}

	engine := service.NewCartEngine(storage.NewRedisCartStore(rdb), *demoUser)
	if _, err := engine.Load(ctx); err != nil {
		log.Fatalf("load cart: %v", err)
	}
	if _, err := engine.Clear(ctx); err != nil {
		log.Fatalf("clear cart: %v", err)
	}

	menu := catalog.DefaultMenu()
	for _, p := range menu[:2] {
		if _, err := engine.Add(ctx, p); err != nil {
			log.Fatalf("seed cart: %v", err)
		}
	}
	log.Printf("seeded demo cart for %s: %d items", *demoUser, engine.Cart().ItemCount())
}
