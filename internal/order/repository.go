package order

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	bolt "github.com/boltdb/bolt"

	"shop/kit/db"
)

type Repository interface {
	GetByID(ctx context.Context, orderID string) (*Order, error)
	GetByPaymentRef(ctx context.Context, reference string) (*Order, error)
	Save(ctx context.Context, o *Order) error
}

const (
	bucketOrders = "orders"
	// bucketOrdersByRef maps payment reference -> order id. Bolt has no
	// secondary indexes; Save maintains this bucket in the same transaction.
	bucketOrdersByRef = "orders_by_ref"
)

type BoltRepository struct {
	db *bolt.DB
}

func NewBoltRepository(path string) (*BoltRepository, error) {
	database, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		log.Printf("layer=repo component=order repo=BoltRepository method=New path=%s err=%v", path, err)
		return nil, err
	}
	err = database.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{bucketOrders, bucketOrdersByRef} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		_ = database.Close()
		log.Printf("layer=repo component=order repo=BoltRepository method=New path=%s err=%v", path, err)
		return nil, err
	}
	return &BoltRepository{db: database}, nil
}

func (r *BoltRepository) Close() error {
	return r.db.Close()
}

func (r *BoltRepository) GetByID(ctx context.Context, orderID string) (*Order, error) {
	var o *Order
	err := r.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket([]byte(bucketOrders)).Get([]byte(orderID))
		if raw == nil {
			return db.ErrNotFound
		}
		o = &Order{}
		return json.Unmarshal(raw, o)
	})
	if err != nil {
		if !db.IsNotFound(err) {
			log.Printf("layer=repo component=order repo=BoltRepository method=GetByID order_id=%s err=%v", orderID, err)
		}
		return nil, err
	}
	return o, nil
}

func (r *BoltRepository) GetByPaymentRef(ctx context.Context, reference string) (*Order, error) {
	var o *Order
	err := r.db.View(func(tx *bolt.Tx) error {
		id := tx.Bucket([]byte(bucketOrdersByRef)).Get([]byte(reference))
		if id == nil {
			return db.ErrNotFound
		}
		raw := tx.Bucket([]byte(bucketOrders)).Get(id)
		if raw == nil {
			return db.ErrNotFound
		}
		o = &Order{}
		return json.Unmarshal(raw, o)
	})
	if err != nil {
		if !db.IsNotFound(err) {
			log.Printf("layer=repo component=order repo=BoltRepository method=GetByPaymentRef reference=%s err=%v", reference, err)
		}
		return nil, err
	}
	return o, nil
}

// Save writes the order and, when a payment reference is set, its reference
// index entry in a single transaction.
func (r *BoltRepository) Save(ctx context.Context, o *Order) error {
	raw, err := json.Marshal(o)
	if err != nil {
		log.Printf("layer=repo component=order repo=BoltRepository method=Save order_id=%s err=%v", o.ID, err)
		return err
	}
	err = r.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket([]byte(bucketOrders)).Put([]byte(o.ID), raw); err != nil {
			return err
		}
		if o.PaymentResult != nil && o.PaymentResult.Reference != "" {
			return tx.Bucket([]byte(bucketOrdersByRef)).Put([]byte(o.PaymentResult.Reference), []byte(o.ID))
		}
		return nil
	})
	if err != nil {
		log.Printf("layer=repo component=order repo=BoltRepository method=Save order_id=%s err=%v", o.ID, err)
		return err
	}
	return nil
}

type InMemoryRepository struct {
	mu    sync.Mutex
	data  map[string]*Order
	byRef map[string]string
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{data: make(map[string]*Order), byRef: make(map[string]string)}
}

func (r *InMemoryRepository) GetByID(ctx context.Context, orderID string) (*Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.data[orderID]
	if !ok {
		return nil, db.ErrNotFound
	}
	return clone(o), nil
}

func (r *InMemoryRepository) GetByPaymentRef(ctx context.Context, reference string) (*Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byRef[reference]
	if !ok {
		return nil, db.ErrNotFound
	}
	o, ok := r.data[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return clone(o), nil
}

func (r *InMemoryRepository) Save(ctx context.Context, o *Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o.PaymentResult != nil && o.PaymentResult.Reference != "" {
		r.byRef[o.PaymentResult.Reference] = o.ID
	}
	r.data[o.ID] = clone(o)
	return nil
}

func clone(o *Order) *Order {
	cpy := *o
	if o.PaymentResult != nil {
		pr := *o.PaymentResult
		cpy.PaymentResult = &pr
	}
	return &cpy
}
