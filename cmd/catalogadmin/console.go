package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/suteetoe/catalogadmin/internal/catalog"
	"github.com/suteetoe/catalogadmin/internal/engine"
	"github.com/suteetoe/catalogadmin/internal/model"
	"github.com/suteetoe/catalogadmin/internal/refdata"
)

// console parses operator commands and routes them to the engine.
type console struct {
	ctx         context.Context
	in          *bufio.Scanner
	client      *catalog.Client
	controller  *engine.Controller
	coordinator *engine.Coordinator
	cache       *refdata.Cache
	notifier    *consoleNotifier
	log         *zap.Logger
}

func (s *console) handle(line string) {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "help":
		s.printHelp()
	case "search":
		q := s.controller.Query()
		q.Search = strings.Join(args, " ")
		s.controller.SetQuery(q)
	case "status":
		s.setStatus(args)
	case "category":
		s.setCategory(args)
	case "sort":
		s.setSort(args)
	case "categories":
		s.printCategories()
	case "list", "refresh":
		s.controller.Refresh()
	case "show":
		s.show(args)
	case "create":
		s.create(args)
	case "edit":
		s.edit(args)
	case "toggle":
		s.toggle(args)
	case "delete":
		s.delete(args)
	case "upload":
		s.upload(args)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q, type 'help'\n", cmd)
	}
}

func (s *console) setStatus(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: status all|active|inactive")
		return
	}
	q := s.controller.Query()
	switch args[0] {
	case "all":
		q.Status = model.StatusAll
	case "active":
		q.Status = model.StatusActive
	case "inactive":
		q.Status = model.StatusInactive
	default:
		fmt.Fprintln(os.Stderr, "usage: status all|active|inactive")
		return
	}
	s.controller.SetQuery(q)
}

func (s *console) setCategory(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: category <id>|all")
		return
	}
	q := s.controller.Query()
	q.CategoryID = args[0]
	s.controller.SetQuery(q)
}

func (s *console) setSort(args []string) {
	if len(args) < 1 || len(args) > 2 {
		fmt.Fprintln(os.Stderr, "usage: sort name|price|stock|created [asc|desc]")
		return
	}
	q := s.controller.Query()
	switch args[0] {
	case "name":
		q.SortBy = model.SortByName
	case "price":
		q.SortBy = model.SortByPrice
	case "stock":
		q.SortBy = model.SortByStock
	case "created":
		q.SortBy = model.SortByCreatedAt
	default:
		fmt.Fprintln(os.Stderr, "usage: sort name|price|stock|created [asc|desc]")
		return
	}
	if len(args) == 2 {
		if args[1] == "asc" {
			q.Order = model.OrderAsc
		} else {
			q.Order = model.OrderDesc
		}
	}
	s.controller.SetQuery(q)
}

func (s *console) printCategories() {
	cats := s.cache.Categories()
	if len(cats) == 0 {
		fmt.Println("no categories available")
		return
	}
	for _, c := range cats {
		fmt.Printf("%4d  %s %s\n", c.ID, c.Icon, c.Name)
	}
}

func (s *console) show(args []string) {
	id, ok := parseID(args)
	if !ok {
		fmt.Fprintln(os.Stderr, "usage: show <id>")
		return
	}
	p, err := s.client.GetProduct(s.ctx, id)
	if err != nil {
		s.notifier.Error("failed to load product: " + err.Error())
		return
	}
	image := "-"
	if p.ImageURL != nil {
		image = *p.ImageURL
	}
	fmt.Printf("#%d %s\n  price: %.2f\n  stock: %d\n  category: %s\n  active: %t\n  image: %s\n  created: %s\n  %s\n",
		p.ID, p.Name, p.Price, p.Stock, s.cache.Label(p.CategoryID), p.IsActive, image,
		p.CreatedAt.Format("2006-01-02 15:04"), p.Description)
}

func (s *console) create(args []string) {
	if len(args) < 3 {
		fmt.Fprintln(os.Stderr, "usage: create <name> <price> <stock> [categoryId]")
		return
	}
	price, err := strconv.ParseFloat(args[1], 64)
	if err != nil || price < 0 {
		fmt.Fprintln(os.Stderr, "price must be a non-negative number")
		return
	}
	stock, err := strconv.Atoi(args[2])
	if err != nil || stock < 0 {
		fmt.Fprintln(os.Stderr, "stock must be a non-negative integer")
		return
	}
	payload := model.ProductPayload{
		Name:     args[0],
		Price:    price,
		Stock:    stock,
		IsActive: true,
	}
	if len(args) > 3 {
		if cid, err := strconv.ParseUint(args[3], 10, 32); err == nil {
			id := uint(cid)
			payload.CategoryID = &id
		}
	}
	// A non-nil error means the operator should adjust and resubmit.
	_ = s.coordinator.Create(s.ctx, payload)
}

func (s *console) edit(args []string) {
	if len(args) < 3 {
		fmt.Fprintln(os.Stderr, "usage: edit <id> name|desc|price|stock|category <value>")
		return
	}
	id, ok := parseID(args[:1])
	if !ok {
		fmt.Fprintln(os.Stderr, "usage: edit <id> name|desc|price|stock|category <value>")
		return
	}
	value := strings.Join(args[2:], " ")
	var patch model.ProductUpdate
	switch args[1] {
	case "name":
		patch.Name = &value
	case "desc":
		patch.Description = &value
	case "price":
		price, err := strconv.ParseFloat(value, 64)
		if err != nil {
			fmt.Fprintln(os.Stderr, "price must be a number")
			return
		}
		patch.Price = &price
	case "stock":
		stock, err := strconv.Atoi(value)
		if err != nil {
			fmt.Fprintln(os.Stderr, "stock must be an integer")
			return
		}
		patch.Stock = &stock
	case "category":
		cid, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			fmt.Fprintln(os.Stderr, "category must be a numeric id")
			return
		}
		u := uint(cid)
		patch.CategoryID = &u
	default:
		fmt.Fprintln(os.Stderr, "usage: edit <id> name|desc|price|stock|category <value>")
		return
	}
	_ = s.coordinator.Update(s.ctx, id, patch)
}

func (s *console) toggle(args []string) {
	id, ok := parseID(args)
	if !ok {
		fmt.Fprintln(os.Stderr, "usage: toggle <id>")
		return
	}
	p, found := s.findRendered(id)
	if !found {
		// Not on the current page; fetch the fresh flag before inverting.
		fresh, err := s.client.GetProduct(s.ctx, id)
		if err != nil {
			s.notifier.Error("failed to load product: " + err.Error())
			return
		}
		p = fresh
	}
	_ = s.coordinator.Toggle(s.ctx, p)
}

func (s *console) delete(args []string) {
	id, ok := parseID(args)
	if !ok {
		fmt.Fprintln(os.Stderr, "usage: delete <id>")
		return
	}
	_ = s.coordinator.Delete(s.ctx, id, &stdinConfirmer{in: s.in})
}

func (s *console) upload(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: upload <id> <path>")
		return
	}
	id, ok := parseID(args[:1])
	if !ok {
		fmt.Fprintln(os.Stderr, "usage: upload <id> <path>")
		return
	}
	f, err := os.Open(args[1])
	if err != nil {
		s.notifier.Error("cannot open file: " + err.Error())
		return
	}
	defer f.Close()

	url, err := s.client.UploadImage(s.ctx, args[1], f)
	if err != nil {
		s.notifier.Error("image upload failed: " + err.Error())
		return
	}
	_ = s.coordinator.Update(s.ctx, id, model.ProductUpdate{ImageURL: &url})
}

func (s *console) findRendered(id uint) (model.Product, bool) {
	for _, p := range s.controller.Snapshot().Products {
		if p.ID == id {
			return p, true
		}
	}
	return model.Product{}, false
}

func (s *console) printHelp() {
	fmt.Print(`commands:
  search [text]                      filter by free text
  status all|active|inactive         filter by active flag
  category <id>|all                  filter by category
  sort name|price|stock|created [asc|desc]
  categories                         list cached categories
  list                               re-fetch with current filters
  show <id>                          print one product
  create <name> <price> <stock> [categoryId]
  edit <id> name|desc|price|stock|category <value>
  toggle <id>                        flip the active flag
  delete <id>                        delete after confirmation
  upload <id> <path>                 upload an image and attach it
  quit
`)
}

func parseID(args []string) (uint, bool) {
	if len(args) != 1 {
		return 0, false
	}
	id, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// stdinConfirmer is the delete confirmation dialog of a terminal UI. It
// shares the console's scanner so buffered input is not lost.
type stdinConfirmer struct {
	in *bufio.Scanner
}

func (c *stdinConfirmer) Confirm(prompt string) bool {
	fmt.Fprintf(os.Stderr, "%s [y/N] ", prompt)
	if !c.in.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(c.in.Text()))
	return answer == "y" || answer == "yes"
}
