package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"github.com/eventhorizon-labs/timedtoken/contract"
	"github.com/eventhorizon-labs/timedtoken/ledgerlog"
	"github.com/eventhorizon-labs/timedtoken/storage"
)

// Interactive console for poking at a timed token: mint against the caps,
// move balances around, and watch the shutdown sweep fire once the clock
// crosses the expiry.
type cli struct {
	contract *contract.TimedToken
	store    *storage.Store
	reader   *bufio.Reader
	account  string
}

func main() {
	dbPath := flag.String("db", "", "path to the state database (empty = in-memory only)")
	logDir := flag.String("logs", "./logs", "directory for operation logs")
	expiryIn := flag.Duration("expiry-in", 0, "override expiry as a duration from now (e.g. 2m)")
	flag.Parse()

	if err := ledgerlog.Init(*logDir, logrus.InfoLevel); err != nil {
		logrus.Fatalf("logger setup failed: %v", err)
	}

	cfg := contract.LoadEnvironmentConfig()
	if *expiryIn > 0 {
		cfg.Expiry = time.Now().Add(*expiryIn)
	}
	c := contract.New(cfg)

	var store *storage.Store
	if *dbPath != "" {
		var err error
		store, err = storage.Open(*dbPath)
		if err != nil {
			logrus.Fatalf("state database setup failed: %v", err)
		}
		defer store.Close()

		state, err := store.Load()
		if err != nil {
			logrus.Fatalf("state load failed: %v", err)
		}
		c.Restore(state)
	}

	app := &cli{
		contract: c,
		store:    store,
		reader:   bufio.NewReader(os.Stdin),
		account:  cfg.Owner,
	}
	app.run()
}

func (app *cli) run() {
	color.Cyan("Timed Token Console — %s (%s)", app.contract.Config().Name, app.contract.Config().Symbol)
	fmt.Println(strings.Repeat("=", 50))

	for {
		app.showMenu()
		choice := strings.TrimSpace(app.readInput("Enter your choice: "))

		switch choice {
		case "1":
			app.showStatus()
		case "2":
			app.generateAccount()
		case "3":
			app.switchAccount()
		case "4":
			app.mint()
		case "5":
			app.transfer()
		case "6":
			app.approve()
		case "7":
			app.transferFrom()
		case "8":
			app.fundNative()
		case "9":
			app.selfDestruct()
		case "10":
			app.listHolders()
		case "0":
			app.saveAndExit()
			return
		default:
			color.Red("Unknown choice: %s", choice)
		}
		fmt.Println()
	}
}

func (app *cli) showMenu() {
	fmt.Println()
	color.Yellow("Acting as: %s", app.account)
	fmt.Println(" 1. Show contract status")
	fmt.Println(" 2. Generate demo account")
	fmt.Println(" 3. Switch acting account")
	fmt.Println(" 4. Mint tokens")
	fmt.Println(" 5. Transfer")
	fmt.Println(" 6. Approve spender")
	fmt.Println(" 7. Transfer from (delegated)")
	fmt.Println(" 8. Fund contract with native currency")
	fmt.Println(" 9. Attempt self-destruct")
	fmt.Println("10. List known holders")
	fmt.Println(" 0. Save and exit")
}

func (app *cli) readInput(prompt string) string {
	fmt.Print(prompt)
	line, _ := app.reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func (app *cli) readAmount(prompt string) (uint64, bool) {
	raw := app.readInput(prompt)
	amount, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		color.Red("Invalid amount: %s", raw)
		return 0, false
	}
	return amount, true
}

func (app *cli) showStatus() {
	cfg := app.contract.Config()
	ledger := app.contract.Ledger()

	fmt.Printf("Token:           %s (%s), %d decimals\n", cfg.Name, cfg.Symbol, cfg.Decimals)
	fmt.Printf("Total supply:    %d / %d\n", ledger.TotalSupply(), cfg.MaxSupply)
	fmt.Printf("Mint cap/call:   %d\n", cfg.MintCap)
	fmt.Printf("Mints/account:   %d\n", cfg.PerAccountMintLimit)
	fmt.Printf("Known holders:   %d\n", app.contract.Holders().Len())
	fmt.Printf("Native balance:  %d (owner received: %d)\n",
		app.contract.NativeBalance(), app.contract.OwnerNativeReceived())
	fmt.Printf("Expiry:          %s\n", cfg.Expiry.Format(time.RFC3339))

	if app.contract.IsExpired() {
		color.Red("State:           EXPIRED — shutdown is legal")
	} else {
		color.Green("State:           ACTIVE — destructs in %s", app.contract.TimeUntilDestruction().Round(time.Second))
	}

	balance, err := ledger.BalanceOf(app.account)
	if err == nil {
		fmt.Printf("Your balance:    %d (mints used: %d)\n", balance, app.contract.MintCountOf(app.account))
	}
}

func (app *cli) generateAccount() {
	key, err := crypto.GenerateKey()
	if err != nil {
		color.Red("Key generation failed: %v", err)
		return
	}
	address := crypto.PubkeyToAddress(key.PublicKey).Hex()
	color.Green("Generated account: %s", address)
	fmt.Println("Use option 3 to act as this account.")
}

func (app *cli) switchAccount() {
	account := app.readInput("Account to act as: ")
	if account == "" {
		color.Red("Account cannot be empty")
		return
	}
	app.account = account
	color.Green("Now acting as %s", account)
}

func (app *cli) mint() {
	amount, ok := app.readAmount("Amount to mint: ")
	if !ok {
		return
	}
	if err := app.contract.MintTokens(app.account, amount); err != nil {
		color.Red("Mint rejected: %v", err)
		return
	}
	balance, _ := app.contract.Ledger().BalanceOf(app.account)
	color.Green("Minted %d, balance now %d", amount, balance)
}

func (app *cli) transfer() {
	to := app.readInput("Recipient: ")
	amount, ok := app.readAmount("Amount: ")
	if !ok {
		return
	}
	if err := app.contract.Transfer(app.account, to, amount); err != nil {
		color.Red("Transfer rejected: %v", err)
		return
	}
	color.Green("Transferred %d to %s", amount, to)
}

func (app *cli) approve() {
	spender := app.readInput("Spender: ")
	amount, ok := app.readAmount("Allowance: ")
	if !ok {
		return
	}
	if err := app.contract.Ledger().Approve(app.account, spender, amount); err != nil {
		color.Red("Approval rejected: %v", err)
		return
	}
	color.Green("Approved %s for %d", spender, amount)
}

func (app *cli) transferFrom() {
	from := app.readInput("From (allowance owner): ")
	to := app.readInput("Recipient: ")
	amount, ok := app.readAmount("Amount: ")
	if !ok {
		return
	}
	if err := app.contract.TransferFrom(app.account, from, to, amount); err != nil {
		color.Red("TransferFrom rejected: %v", err)
		return
	}
	color.Green("Moved %d from %s to %s", amount, from, to)
}

func (app *cli) fundNative() {
	amount, ok := app.readAmount("Native amount to deposit: ")
	if !ok {
		return
	}
	app.contract.FundNative(amount)
	color.Green("Contract native balance now %d", app.contract.NativeBalance())
}

func (app *cli) selfDestruct() {
	if err := app.contract.CheckAndSelfDestruct(app.account); err != nil {
		color.Red("Self-destruct rejected: %v", err)
		return
	}
	color.Red("Contract destructed. Owner received %d native; all tracked balances zeroed.",
		app.contract.OwnerNativeReceived())
}

func (app *cli) listHolders() {
	holders := app.contract.Holders().Holders()
	if len(holders) == 0 {
		fmt.Println("No holders recorded yet.")
		return
	}
	for i, holder := range holders {
		balance, _ := app.contract.Ledger().BalanceOf(holder)
		fmt.Printf("%3d. %s  balance=%d  mints=%d\n", i+1, holder, balance, app.contract.MintCountOf(holder))
	}
}

func (app *cli) saveAndExit() {
	if app.store != nil {
		if err := app.store.Save(app.contract.Snapshot()); err != nil {
			color.Red("State save failed: %v", err)
			return
		}
		color.Green("State saved.")
	}
	fmt.Println("Bye.")
}
