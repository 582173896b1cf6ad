package analytics_service

import (
	"time"

	"github.com/shopspring/decimal"
)

// GraphQL 连接结构

type pageInfo struct {
	HasNextPage bool   `json:"hasNextPage"`
	EndCursor   string `json:"endCursor"`
}

type edge[N any] struct {
	Node N `json:"node"`
}

type connection[N any] struct {
	PageInfo pageInfo  `json:"pageInfo"`
	Edges    []edge[N] `json:"edges"`
}

type ordersData[N any] struct {
	Orders connection[N] `json:"orders"`
}

type productsData[N any] struct {
	Products connection[N] `json:"products"`
}

type money struct {
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
}

func (m money) float() float64 {
	return m.Amount.InexactFloat64()
}

type moneySet struct {
	ShopMoney money `json:"shopMoney"`
}

type customer struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

type image struct {
	URL     string `json:"url"`
	AltText string `json:"altText"`
}

// periodNode 时间窗口查询
type periodNode struct {
	ID                     string    `json:"id"`
	CreatedAt              time.Time `json:"createdAt"`
	DisplayFinancialStatus string    `json:"displayFinancialStatus"`
	TotalPriceSet          moneySet  `json:"totalPriceSet"`
	Customer               *customer `json:"customer"`
}

// orderNode 通用订单字段，不同查询只填充其中一部分
type orderNode struct {
	ID                       string                   `json:"id"`
	Name                     string                   `json:"name"`
	CreatedAt                time.Time                `json:"createdAt"`
	DisplayFinancialStatus   string                   `json:"displayFinancialStatus"`
	DisplayFulfillmentStatus string                   `json:"displayFulfillmentStatus"`
	TotalPriceSet            moneySet                 `json:"totalPriceSet"`
	Customer                 *customer                `json:"customer"`
	Tags                     []string                 `json:"tags"`
	LineItems                connection[lineItemNode] `json:"lineItems"`
}

func (o orderNode) total() float64 {
	return o.TotalPriceSet.ShopMoney.float()
}

type lineItemNode struct {
	Title    string       `json:"title"`
	Quantity int          `json:"quantity"`
	Variant  *variantNode `json:"variant"`
}

type variantNode struct {
	ID                string          `json:"id"`
	Price             decimal.Decimal `json:"price"`
	SKU               string          `json:"sku"`
	InventoryQuantity *int            `json:"inventoryQuantity"`
	Image             *image          `json:"image"`
	InventoryItem     *struct {
		UnitCost *struct {
			Amount decimal.Decimal `json:"amount"`
		} `json:"unitCost"`
	} `json:"inventoryItem"`
	Product *struct {
		ID            string `json:"id"`
		ProductType   string `json:"productType"`
		Vendor        string `json:"vendor"`
		FeaturedImage *image `json:"featuredImage"`
	} `json:"product"`
}

func (v *variantNode) price() float64 {
	if v == nil {
		return 0
	}
	return v.Price.InexactFloat64()
}

type productNode struct {
	ID             string                  `json:"id"`
	Title          string                  `json:"title"`
	Handle         string                  `json:"handle"`
	Status         string                  `json:"status"`
	TotalInventory int                     `json:"totalInventory"`
	ProductType    string                  `json:"productType"`
	Tags           []string                `json:"tags"`
	Variants       connection[variantNode] `json:"variants"`
	Images         connection[image]       `json:"images"`
}

func (p productNode) firstVariant() *variantNode {
	if len(p.Variants.Edges) == 0 {
		return nil
	}
	return &p.Variants.Edges[0].Node
}
