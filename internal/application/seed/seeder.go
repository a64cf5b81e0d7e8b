// Package seed populates an empty database with the reference catalog,
// the location tree, demo users and stores.
package seed

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/shopcart/backend/internal/domain/account"
	"github.com/shopcart/backend/internal/domain/catalog"
	"github.com/shopcart/backend/internal/domain/identity"
	"github.com/shopcart/backend/internal/domain/location"
	"github.com/shopcart/backend/internal/domain/store"
	"github.com/shopcart/backend/internal/infrastructure/telemetry"
)

// Well-known seeded usernames
const (
	AdminUsername = "admin"
	TestUsername  = "test"
)

// Opening balances of seeded wallets
var (
	UserOpeningBalance  = decimal.NewFromInt(100000)
	AdminOpeningBalance = decimal.NewFromInt(2000000)
)

// storesPerProduct is how many random stores receive stock of each product
const storesPerProduct = 2

var (
	addressNames = []string{"Home", "Office", "Work", "College", "FarmHouse"}
	landmarks    = []string{
		"Bull Temple", "Hotel Dwarka", "Vidyarthi Bhavan", "Maharaja Agrasen Hospital", "Church Parking",
		"Kanti Sweets", "Cafe Coffee Day", "Eden Park Restaurant", "Chaipoint", "Space Matrix",
		"Brundavan Cafe", "BMS College of Engineering", "Ashok Nagar Post Office",
	}
)

// Repositories gives a step access to every table it may fill
type Repositories interface {
	Locations() location.Repository
	Addresses() location.AddressRepository
	Users() identity.UserRepository
	Accounts() account.AccountRepository
	Stores() store.Repository
	Categories() catalog.CategoryRepository
	Products() catalog.ProductRepository
	StoreItems() catalog.StoreItemRepository
}

// TransactionScope runs each seeding step in its own transaction
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos Repositories) error) error
}

// Options tunes the seeded data
type Options struct {
	// AdminPassword is used for the admin and test users
	AdminPassword string
	// DefaultPassword is used for every other user
	DefaultPassword string
	// RandomSeed makes stock and addresses reproducible; zero picks one
	RandomSeed int64
}

// Report counts what a run inserted
type Report struct {
	Locations  int
	Users      int
	Stores     int
	Categories int
	Products   int
	Skipped    []string
}

// Seeder fills empty tables from a Dataset
type Seeder struct {
	scope  TransactionScope
	data   *Dataset
	opts   Options
	rnd    *rand.Rand
	title  cases.Caser
	logger *zap.Logger
	now    func() time.Time
}

// NewSeeder creates a Seeder
func NewSeeder(scope TransactionScope, data *Dataset, opts Options, logger *zap.Logger) *Seeder {
	seed := uint64(opts.RandomSeed)
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Seeder{
		scope:  scope,
		data:   data,
		opts:   opts,
		rnd:    rand.New(rand.NewPCG(seed, seed>>1|1)),
		title:  cases.Title(language.English),
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

type step struct {
	name  string
	count func(ctx context.Context, repos Repositories) (int64, error)
	run   func(ctx context.Context, repos Repositories, report *Report) error
}

// Run executes every step in order. A step whose table already holds rows
// is skipped, so Run is safe to call on every start.
func (s *Seeder) Run(ctx context.Context) (*Report, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "seed", "run")
	defer span.End()

	steps := []step{
		{"locations", func(ctx context.Context, r Repositories) (int64, error) { return r.Locations().Count(ctx) }, s.seedLocations},
		{"users", func(ctx context.Context, r Repositories) (int64, error) { return r.Users().Count(ctx) }, s.seedUsers},
		{"stores", func(ctx context.Context, r Repositories) (int64, error) { return r.Stores().Count(ctx) }, s.seedStores},
		{"categories", func(ctx context.Context, r Repositories) (int64, error) { return r.Categories().Count(ctx) }, s.seedCategories},
		{"products", func(ctx context.Context, r Repositories) (int64, error) { return r.Products().Count(ctx) }, s.seedProducts},
	}

	report := &Report{}
	for _, st := range steps {
		err := s.scope.Execute(ctx, func(repos Repositories) error {
			n, err := st.count(ctx, repos)
			if err != nil {
				return err
			}
			if n > 0 {
				report.Skipped = append(report.Skipped, st.name)
				return nil
			}
			return st.run(ctx, repos, report)
		})
		if err != nil {
			telemetry.RecordError(span, err)
			return report, fmt.Errorf("seed %s: %w", st.name, err)
		}
	}

	telemetry.SetAttributes(span,
		"seed.locations", report.Locations,
		"seed.users", report.Users,
		"seed.products", report.Products)
	s.logger.Info("Seeding finished",
		zap.Int("locations", report.Locations),
		zap.Int("users", report.Users),
		zap.Int("stores", report.Stores),
		zap.Int("categories", report.Categories),
		zap.Int("products", report.Products),
		zap.Strings("skipped", report.Skipped))
	return report, nil
}

func (s *Seeder) seedLocations(ctx context.Context, repos Repositories, report *Report) error {
	country, err := location.NewLocation(s.title.String(s.data.Country.Name), location.TypeCountry, nil)
	if err != nil {
		return err
	}
	nodes := []location.Location{*country}
	for _, sd := range s.data.Country.States {
		state, err := location.NewLocation(s.title.String(sd.Name), location.TypeState, country)
		if err != nil {
			return err
		}
		nodes = append(nodes, *state)
		for _, cd := range sd.Cities {
			city, err := location.NewLocation(s.title.String(cd.Name), location.TypeCity, state)
			if err != nil {
				return err
			}
			nodes = append(nodes, *city)
			for _, name := range cd.Areas {
				area, err := location.NewLocation(s.title.String(name), location.TypeArea, city)
				if err != nil {
					return err
				}
				nodes = append(nodes, *area)
			}
		}
	}
	if err := repos.Locations().CreateBatch(ctx, nodes); err != nil {
		return err
	}
	report.Locations = len(nodes)
	return nil
}

func (s *Seeder) seedUsers(ctx context.Context, repos Repositories, report *Report) error {
	areas, err := s.areas(ctx, repos)
	if err != nil {
		return err
	}
	for _, ud := range s.data.Users {
		username := strings.ToLower(strings.TrimSpace(ud.UserName))
		password := s.opts.DefaultPassword
		balance := UserOpeningBalance
		var extra []identity.Role
		switch username {
		case AdminUsername:
			password = s.opts.AdminPassword
			balance = AdminOpeningBalance
			extra = identity.AllRoles()
		case TestUsername:
			password = s.opts.AdminPassword
			extra = []identity.Role{identity.RoleStoreAdmin, identity.RoleTrackAdmin}
		}

		user, err := identity.NewUser(username, ud.Name, ud.Email, password)
		if err != nil {
			return fmt.Errorf("user %s: %w", username, err)
		}
		user.Phone = ud.PhoneNumber
		user.GrantRoles(extra...)

		addr, err := s.randomAddress(areas, user.Name, user.Phone)
		if err != nil {
			return err
		}
		if err := repos.Addresses().Create(ctx, addr); err != nil {
			return err
		}
		user.AddressID = &addr.ID
		if err := repos.Users().Create(ctx, user); err != nil {
			return fmt.Errorf("user %s: %w", username, err)
		}

		acc, err := account.NewAccount(account.OwnerUser, user.ID, balance)
		if err != nil {
			return err
		}
		if err := repos.Accounts().Create(ctx, acc); err != nil {
			return err
		}
		report.Users++
	}
	return nil
}

func (s *Seeder) seedStores(ctx context.Context, repos Repositories, report *Report) error {
	areas, err := s.areas(ctx, repos)
	if err != nil {
		return err
	}
	for _, name := range s.data.Stores {
		st, err := store.NewStore(name)
		if err != nil {
			return err
		}
		addr, err := s.randomAddress(areas, st.Name, "")
		if err != nil {
			return err
		}
		if err := repos.Addresses().Create(ctx, addr); err != nil {
			return err
		}
		st.AddressID = &addr.ID
		if err := repos.Stores().Create(ctx, st); err != nil {
			return err
		}
		acc, err := account.NewAccount(account.OwnerStore, st.ID, decimal.Zero)
		if err != nil {
			return err
		}
		if err := repos.Accounts().Create(ctx, acc); err != nil {
			return err
		}
		report.Stores++
	}
	return nil
}

func (s *Seeder) seedCategories(ctx context.Context, repos Repositories, report *Report) error {
	var create func(cd CategoryData, parent *uuid.UUID) error
	create = func(cd CategoryData, parent *uuid.UUID) error {
		cat, err := toCategory(cd, parent)
		if err != nil {
			return err
		}
		if err := repos.Categories().Create(ctx, cat); err != nil {
			return fmt.Errorf("category %s: %w", cd.Category, err)
		}
		report.Categories++
		for _, sub := range cd.SubCategories {
			if err := create(sub, &cat.ID); err != nil {
				return err
			}
		}
		return nil
	}
	for _, cd := range s.data.Categories {
		if err := create(cd, nil); err != nil {
			return err
		}
	}
	return nil
}

func toCategory(cd CategoryData, parent *uuid.UUID) (*catalog.Category, error) {
	cat := &catalog.Category{
		ID:       uuid.New(),
		Name:     strings.TrimSpace(cd.Category),
		URL:      cd.URL,
		ParentID: parent,
		Tags:     cd.Tags,
	}
	for _, pd := range cd.Properties {
		t, err := catalog.ParsePropertyType(pd.Type)
		if err != nil {
			return nil, fmt.Errorf("category %s: %w", cd.Category, err)
		}
		prop := catalog.CategoryProperty{Name: pd.Name, Type: t, Filter: pd.Filter == nil || *pd.Filter, Unit: pd.Unit}
		for _, v := range strings.Split(pd.Values, ",") {
			if v = strings.TrimSpace(v); v != "" {
				prop.Values = append(prop.Values, v)
			}
		}
		cat.Properties = append(cat.Properties, prop)
	}
	return cat, nil
}

func (s *Seeder) seedProducts(ctx context.Context, repos Repositories, report *Report) error {
	stores, err := repos.Stores().List(ctx)
	if err != nil {
		return err
	}
	if len(stores) == 0 {
		return fmt.Errorf("no stores to stock products in")
	}
	categories := make(map[string]*catalog.Category)

	for _, pd := range s.data.Products {
		cat, ok := categories[pd.Category]
		if !ok {
			cat, err = repos.Categories().FindByName(ctx, pd.Category)
			if err != nil {
				return fmt.Errorf("product %s: category %s: %w", pd.Name, pd.Category, err)
			}
			categories[pd.Category] = cat
		}

		p, err := s.toProduct(pd, cat)
		if err != nil {
			return fmt.Errorf("product %s: %w", pd.Name, err)
		}

		items := make([]catalog.StoreItem, 0, storesPerProduct)
		for _, i := range s.rnd.Perm(len(stores))[:min(storesPerProduct, len(stores))] {
			item, err := catalog.NewStoreItem(p.ID, stores[i].ID, s.rnd.IntN(1000))
			if err != nil {
				return err
			}
			items = append(items, *item)
		}
		p.RefreshAvailability(items, s.now())

		if err := repos.Products().Create(ctx, p); err != nil {
			return fmt.Errorf("product %s: %w", pd.Name, err)
		}
		if err := repos.StoreItems().CreateBatch(ctx, items); err != nil {
			return err
		}
		report.Products++
	}
	return nil
}

func (s *Seeder) toProduct(pd ProductData, cat *catalog.Category) (*catalog.Product, error) {
	p, err := catalog.NewProduct(pd.Name, pd.Brand, pd.Model, decimal.NewFromFloat(pd.Amount), &cat.ID)
	if err != nil {
		return nil, err
	}
	p.Description = pd.Description
	p.Features = pd.Features
	p.SoldQuantity = 1000 + s.rnd.IntN(99000)
	p.MaxPerOrder = 1 + s.rnd.IntN(4)
	if len(pd.URLs) > 0 {
		p.PhotoURL = pd.URLs[0]
	}

	for i, tag := range pd.Tags {
		score := catalog.TagScoreDefault
		if i == 0 {
			score = catalog.TagScorePrimary
		}
		p.AddTag(tag, score)
	}
	p.AddTag(p.Model, catalog.TagScoreModel)
	p.AddTag(p.Brand, catalog.TagScoreBrand)
	for _, tag := range cat.Tags {
		p.AddTag(tag, catalog.TagScoreCategory)
	}

	for _, pv := range pd.Properties {
		declared, ok := cat.Property(pv.Name)
		if !ok {
			return nil, fmt.Errorf("category %s has no property %s", cat.Name, pv.Name)
		}
		prop, err := catalog.NewProperty(declared.Name, declared.Type, pv.Value)
		if err != nil {
			return nil, err
		}
		p.Properties = append(p.Properties, prop)
	}
	return p, nil
}

func (s *Seeder) areas(ctx context.Context, repos Repositories) ([]location.Location, error) {
	areas, err := repos.Locations().ListByType(ctx, location.TypeArea)
	if err != nil {
		return nil, err
	}
	if len(areas) == 0 {
		return nil, fmt.Errorf("no areas to place addresses in")
	}
	return areas, nil
}

func (s *Seeder) randomAddress(areas []location.Location, name, mobile string) (*location.Address, error) {
	area := areas[s.rnd.IntN(len(areas))]
	line := fmt.Sprintf("#%d, %dth Cross, %dth Main", 1+s.rnd.IntN(99), 3+s.rnd.IntN(23), 3+s.rnd.IntN(12))
	addr, err := location.NewAddress(&area, addressNames[s.rnd.IntN(len(addressNames))], mobile, line,
		landmarks[s.rnd.IntN(len(landmarks))], fmt.Sprintf("%d", 500000+s.rnd.IntN(100000)))
	if err != nil {
		return nil, err
	}
	if name != "" {
		addr.Name = name
	}
	return addr, nil
}
