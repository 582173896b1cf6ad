package analytics_service

// Admin GraphQL 查询

const ordersPeriodQuery = `query OrdersPeriod($first: Int!, $queryStr: String!) {
  orders(first: $first, sortKey: CREATED_AT, reverse: true, query: $queryStr) {
    edges {
      node {
        id createdAt displayFinancialStatus
        totalPriceSet { shopMoney { amount } }
        customer { email }
      }
    }
  }
}`

const executiveKPIsQuery = `query ExecutiveKPIs($first: Int!) {
  orders(first: $first, sortKey: CREATED_AT, reverse: true) {
    edges {
      node {
        createdAt
        displayFinancialStatus
        totalPriceSet { shopMoney { amount } }
      }
    }
  }
}`

const brandsRevenueQuery = `query BrandsRevenue($first: Int!) {
  orders(first: $first, sortKey: CREATED_AT, reverse: true) {
    edges {
      node {
        id
        createdAt
        displayFinancialStatus
        totalPriceSet { shopMoney { amount } }
        lineItems(first: 20) {
          edges {
            node {
              title quantity
              variant { price product { productType vendor } }
            }
          }
        }
      }
    }
  }
}`

const lowStockQuery = `query LowStock($first: Int!) {
  products(first: $first) {
    edges {
      node {
        title
        variants(first: 1) {
          edges { node { inventoryQuantity } }
        }
      }
    }
  }
}`

const pendingOrdersQuery = `query PendingOrders($first: Int!, $query: String!) {
  orders(first: $first, query: $query, sortKey: CREATED_AT, reverse: false) {
    edges {
      node {
        id name createdAt displayFulfillmentStatus
        totalPriceSet { shopMoney { amount } }
      }
    }
  }
}`

const perfChartQuery = `query PerfChart($first: Int!) {
  orders(first: $first, sortKey: CREATED_AT, reverse: true) {
    edges {
      node {
        createdAt
        displayFinancialStatus
        totalPriceSet { shopMoney { amount } }
      }
    }
  }
}`

const topProductsQuery = `query TopProducts($first: Int!) {
  orders(first: $first, sortKey: CREATED_AT, reverse: true) {
    edges {
      node {
        lineItems(first: 10) {
          edges {
            node {
              title quantity
              variant {
                price
                image { url altText }
                product { id featuredImage { url altText } }
              }
            }
          }
        }
      }
    }
  }
}`

const payoutScheduleQuery = `query PayoutSchedule($first: Int!) {
  orders(
    first: $first
    sortKey: CREATED_AT
    reverse: true
    query: "financial_status:paid OR financial_status:pending OR financial_status:partially_paid"
  ) {
    edges {
      node {
        id name createdAt displayFinancialStatus
        totalPriceSet { shopMoney { amount } }
      }
    }
  }
}`

const commissionTimelineQuery = `query CommissionTimeline($first: Int!, $after: String) {
  orders(first: $first, after: $after, sortKey: CREATED_AT, reverse: true) {
    pageInfo { hasNextPage endCursor }
    edges {
      node {
        createdAt
        displayFinancialStatus
        totalPriceSet { shopMoney { amount } }
        tags
      }
    }
  }
}`

const commissionTransactionsQuery = `query CommissionTransactions($first: Int!) {
  orders(first: $first, sortKey: CREATED_AT, reverse: true) {
    edges {
      node {
        id name createdAt displayFinancialStatus
        totalPriceSet { shopMoney { amount currencyCode } }
        customer { firstName lastName email }
        tags
      }
    }
  }
}`

const paymentQueueQuery = `query PaymentQueue($first: Int!) {
  orders(
    first: $first
    sortKey: CREATED_AT
    reverse: true
    query: "financial_status:pending OR financial_status:partially_paid"
  ) {
    edges {
      node {
        id name createdAt
        totalPriceSet { shopMoney { amount currencyCode } }
        customer { firstName lastName email }
        tags
      }
    }
  }
}`

const productsQuery = `query FetchProducts($first: Int!) {
  products(first: $first) {
    edges {
      node {
        id title handle status totalInventory
        productType
        tags
        variants(first: 1) {
          edges {
            node {
              id price compareAtPrice sku
              inventoryQuantity
              inventoryItem { unitCost { amount } }
            }
          }
        }
        images(first: 1) {
          edges { node { url altText } }
        }
      }
    }
  }
}`

const ordersQuery = `query FetchOrders($first: Int!) {
  orders(first: $first, sortKey: CREATED_AT, reverse: true) {
    edges {
      node {
        id name createdAt displayFinancialStatus displayFulfillmentStatus
        totalPriceSet { shopMoney { amount currencyCode } }
        lineItems(first: 5) {
          edges {
            node {
              title quantity
              variant { sku price }
            }
          }
        }
      }
    }
  }
}`
