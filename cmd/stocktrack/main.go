package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"stocktrack"
	"stocktrack/dashboard"
	"stocktrack/export"
	"stocktrack/internal/config"
	"stocktrack/kv"
	"stocktrack/pkg/logger"
)

const usageText = `usage: stocktrack <command> [flags]

commands:
  login      sign in as a user (the session collaborator)
  logout     clear the current session
  in         record a stock receipt (admin only)
  out        record a stock withdrawal
  list       list records of one kind, optionally filtered
  edit       replace the fields of a record by id
  delete     remove a record by id, or by field match with -match
  items      list known items with available stock
  dashboard  print totals, stock levels, chart and recent movements
  export     write the full log as a spreadsheet
`

type app struct {
	cfg     *config.Config
	store   *stocktrack.Store
	session *stocktrack.KVSession
	book    *stocktrack.Book
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usageText)
		os.Exit(2)
	}

	cfg, err := config.Load("stocktrack.yaml")
	if err != nil {
		fatal(err)
	}
	log := logger.Must(logger.New(cfg.LogLevel))
	defer log.Sync()

	backend, err := kv.OpenSQLite(cfg.DBPath)
	if err != nil {
		fatal(fmt.Errorf("open store %s: %w", cfg.DBPath, err))
	}
	defer backend.Close()

	store := stocktrack.NewStore(backend, logger.Named(log, "store"))
	session := stocktrack.NewKVSession(backend)
	activity := stocktrack.NewActivityLog(backend)
	book := stocktrack.NewBook(store, session, activity, logger.Named(log, "book"))
	book.SetLowStockThreshold(cfg.LowStockThreshold)

	a := &app{cfg: cfg, store: store, session: session, book: book}

	var cmdErr error
	switch os.Args[1] {
	case "login":
		cmdErr = a.login(os.Args[2:])
	case "logout":
		cmdErr = a.session.SignOut()
	case "in":
		cmdErr = a.addIn(os.Args[2:])
	case "out":
		cmdErr = a.addOut(os.Args[2:])
	case "list":
		cmdErr = a.list(os.Args[2:])
	case "edit":
		cmdErr = a.edit(os.Args[2:])
	case "delete":
		cmdErr = a.delete(os.Args[2:])
	case "items":
		cmdErr = a.items()
	case "dashboard":
		cmdErr = a.dashboard()
	case "export":
		cmdErr = a.export(os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usageText)
		os.Exit(2)
	}
	if cmdErr != nil {
		fatal(cmdErr)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "stocktrack:", err)
	os.Exit(1)
}

func (a *app) login(args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	user := fs.String("user", "", "username")
	role := fs.String("role", "staff", "role (admin or staff)")
	fs.Parse(args)
	if *user == "" {
		return errors.New("login: -user is required")
	}
	if err := a.session.SignIn(stocktrack.User{Username: *user, Role: *role}); err != nil {
		return err
	}
	fmt.Printf("signed in as %s (%s)\n", *user, *role)
	return nil
}

func (a *app) addIn(args []string) error {
	fs := flag.NewFlagSet("in", flag.ExitOnError)
	item := fs.String("item", "", "item name")
	qty := fs.Float64("qty", 0, "quantity")
	price := fs.Float64("price", 0, "unit price")
	supplier := fs.String("supplier", "", "supplier")
	receiver := fs.String("receiver", "", "received by")
	note := fs.String("note", "", "optional note")
	fs.Parse(args)

	tx, err := a.book.AddIn(stocktrack.InFields{
		Item:       *item,
		Quantity:   *qty,
		UnitPrice:  *price,
		Supplier:   *supplier,
		ReceivedBy: *receiver,
		Note:       *note,
	})
	if err != nil {
		return err
	}
	fmt.Printf("%s received %g %s from %s\n", tx.ReceivedBy, tx.Quantity, tx.DisplayItem, tx.Supplier)
	return nil
}

func (a *app) addOut(args []string) error {
	fs := flag.NewFlagSet("out", flag.ExitOnError)
	item := fs.String("item", "", "item name")
	qty := fs.Float64("qty", 0, "quantity")
	person := fs.String("person", "", "taken by")
	reason := fs.String("reason", "", "optional reason")
	fs.Parse(args)

	res, err := a.book.AddOut(stocktrack.OutFields{
		Item:     *item,
		Quantity: *qty,
		Person:   *person,
		Reason:   *reason,
	})
	if err != nil {
		return err
	}
	fmt.Printf("%s took %g %s\n", res.Tx.Person, res.Tx.Quantity, res.Tx.Item)
	if res.LowStock {
		fmt.Printf("warning: low stock for %s (%g remaining)\n", res.Tx.Item, res.Remaining)
	}
	return nil
}

func (a *app) list(args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	kind := fs.String("kind", stocktrack.KindIn, "in or out")
	search := fs.String("search", "", "keyword filter")
	fs.Parse(args)

	entries := stocktrack.Filter(a.store.LoadAll(), *kind, *search)
	if len(entries) == 0 {
		fmt.Printf("no stock %s records found\n", *kind)
		return nil
	}
	for _, tx := range entries {
		switch tx.Kind {
		case stocktrack.KindIn:
			fmt.Printf("%-8s  %-20s %8g  %8.2f %10.2f  %-12s %-12s %s %s  %s\n",
				shortID(tx.ID), tx.Name(), tx.Quantity, tx.UnitPrice, tx.TotalPrice,
				tx.Supplier, tx.ReceivedBy, tx.Date, tx.Time, tx.Note)
		case stocktrack.KindOut:
			fmt.Printf("%-8s  %-20s %8g  %-12s %-16s %s %s\n",
				shortID(tx.ID), tx.Item, tx.Quantity, tx.Person, tx.Reason, tx.Date, tx.Time)
		}
	}
	return nil
}

func (a *app) edit(args []string) error {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	id := fs.String("id", "", "transaction id (prefix accepted)")
	kind := fs.String("kind", stocktrack.KindIn, "in or out")
	item := fs.String("item", "", "item name")
	qty := fs.Float64("qty", 0, "quantity")
	price := fs.Float64("price", 0, "unit price (in only)")
	supplier := fs.String("supplier", "", "supplier (in only)")
	receiver := fs.String("receiver", "", "received by (in only)")
	note := fs.String("note", "", "optional note (in only)")
	person := fs.String("person", "", "taken by (out only)")
	reason := fs.String("reason", "", "optional reason (out only)")
	fs.Parse(args)

	full, err := a.resolveID(*id)
	if err != nil {
		return err
	}
	switch *kind {
	case stocktrack.KindIn:
		_, err = a.book.EditIn(full, stocktrack.InFields{
			Item: *item, Quantity: *qty, UnitPrice: *price,
			Supplier: *supplier, ReceivedBy: *receiver, Note: *note,
		})
	case stocktrack.KindOut:
		_, err = a.book.EditOut(full, stocktrack.OutFields{
			Item: *item, Quantity: *qty, Person: *person, Reason: *reason,
		})
	default:
		return fmt.Errorf("edit: unknown kind %q", *kind)
	}
	if err != nil {
		return err
	}
	fmt.Println("updated", shortID(full))
	return nil
}

func (a *app) delete(args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	id := fs.String("id", "", "transaction id (prefix accepted)")
	match := fs.Bool("match", false, "resolve by field match instead of id")
	kind := fs.String("kind", stocktrack.KindIn, "in or out")
	item := fs.String("item", "", "item name (with -match)")
	qty := fs.Float64("qty", 0, "quantity (with -match)")
	date := fs.String("date", "", "date string (with -match)")
	timeStr := fs.String("time", "", "time string (with -match)")
	fs.Parse(args)

	var removed stocktrack.Transaction
	var err error
	if *match {
		removed, err = a.book.DeleteMatching(stocktrack.Transaction{
			Kind: *kind, Item: *item, Quantity: *qty, Date: *date, Time: *timeStr,
		})
	} else {
		var full string
		full, err = a.resolveID(*id)
		if err != nil {
			return err
		}
		removed, err = a.book.Delete(full, *kind)
	}
	if err != nil {
		return err
	}
	label := "stock out"
	if removed.Kind == stocktrack.KindIn {
		label = "stock in"
	}
	fmt.Printf("deleted %s: %g %s\n", label, removed.Quantity, removed.Name())
	return nil
}

func (a *app) items() error {
	items := stocktrack.KnownItems(a.store.LoadAll())
	if len(items) == 0 {
		fmt.Println("no items found")
		return nil
	}
	for _, it := range items {
		fmt.Printf("%-24s %g available\n", it.Item, it.Available)
	}
	return nil
}

func (a *app) dashboard() error {
	sum := dashboard.Build(a.store.LoadAll())

	fmt.Printf("total in:  %.2f\ntotal out: %.2f\n", sum.TotalIn, sum.TotalOut)
	most := sum.MostFrequent
	if most == "" {
		most = "-"
	}
	fmt.Printf("most frequent item: %s\n\n", most)

	if len(sum.Levels) == 0 {
		fmt.Println("no stock data available")
		return nil
	}
	fmt.Println("stock levels:")
	labels, values := dashboard.ChartData(sum)
	max := values[0]
	for _, v := range values {
		if v > max {
			max = v
		}
	}
	for i, label := range labels {
		fmt.Printf("  %-20s %8g  %s\n", label, values[i], bar(values[i], max))
	}

	printRecent := func(title string, entries []stocktrack.Transaction) {
		fmt.Printf("\nrecent %s:\n", title)
		if len(entries) == 0 {
			fmt.Println("  no recent transactions")
			return
		}
		for _, tx := range entries {
			fmt.Printf("  %-20s %8g  %s %s\n", tx.Name(), tx.Quantity, tx.Date, tx.Time)
		}
	}
	printRecent("stock in", sum.RecentIn)
	printRecent("stock out", sum.RecentOut)
	return nil
}

func (a *app) export(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	out := fs.String("out", "", "output path (default: export dir + dated name)")
	fs.Parse(args)

	path := *out
	if path == "" {
		path = filepath.Join(a.cfg.ExportDir, export.FileName(time.Now()))
	}
	if err := export.WriteFile(a.store.LoadAll(), path); err != nil {
		return err
	}
	fmt.Println("exported to", path)
	return nil
}

// resolveID expands a unique ID prefix to the full identifier.
func (a *app) resolveID(prefix string) (string, error) {
	if prefix == "" {
		return "", errors.New("-id is required")
	}
	var found string
	for _, tx := range a.store.LoadAll() {
		if strings.HasPrefix(tx.ID, prefix) {
			if found != "" && found != tx.ID {
				return "", fmt.Errorf("id prefix %q is ambiguous", prefix)
			}
			found = tx.ID
		}
	}
	if found == "" {
		return "", stocktrack.ErrNotFound
	}
	return found, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func bar(v, max float64) string {
	if max <= 0 || v <= 0 {
		return ""
	}
	n := int(v / max * 30)
	if n < 1 {
		n = 1
	}
	return strings.Repeat("#", n)
}
