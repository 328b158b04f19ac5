package main

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/Klingon-tech/helium-wallet/internal/report"
	"github.com/Klingon-tech/helium-wallet/internal/wallet"
	"github.com/Klingon-tech/helium-wallet/pkg/crypto"
	"github.com/Klingon-tech/helium-wallet/pkg/txn"
	"github.com/Klingon-tech/helium-wallet/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPassword = "correct horse"

// fakeAPI serves the Helium API endpoints the wallet uses.
type fakeAPI struct {
	*httptest.Server

	mu        sync.Mutex
	requests  int
	submitted [][]byte
	failVars  bool
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	f := &fakeAPI{}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Close)
	return f
}

func (f *fakeAPI) apiURL() string { return f.Server.URL + "/v1" }

func (f *fakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests++

	switch {
	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/v1/accounts/"):
		addr := strings.TrimPrefix(r.URL.Path, "/v1/accounts/")
		json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{
			"address":               addr,
			"balance":               50_000_000_000,
			"dc_balance":            1_000_000,
			"sec_balance":           700_000_000,
			"nonce":                 5,
			"speculative_nonce":     5,
			"sec_nonce":             2,
			"speculative_sec_nonce": 2,
		}})
	case r.Method == http.MethodGet && r.URL.Path == "/v1/vars":
		if f.failVars {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":"vars unavailable"}`))
			return
		}
		w.Write([]byte(`{"data":{"txn_fees":true,"dc_payload_size":24,"txn_fee_multiplier":5000}}`))
	case r.Method == http.MethodPost && r.URL.Path == "/v1/pending_transactions":
		var req struct {
			Txn string `json:"txn"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		raw, err := base64.StdEncoding.DecodeString(req.Txn)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.submitted = append(f.submitted, raw)
		w.Write([]byte(`{"data":{"hash":"abc123"}}`))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (f *fakeAPI) stats() (requests int, submitted [][]byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests, append([][]byte(nil), f.submitted...)
}

func isolate(t *testing.T) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("APPDATA", home)
	for _, k := range []string{"HELIUM_API_URL", "HELIUM_WALLET_API_URL", "HELIUM_WALLET_FORMAT",
		"HELIUM_WALLET_FILE", "HELIUM_WALLET_TIMEOUT", "HELIUM_WALLET_LOG_LEVEL"} {
		t.Setenv(k, "")
	}
	t.Setenv(passwordEnv, testPassword)
}

func fastParams() wallet.EncryptionParams {
	return wallet.EncryptionParams{Memory: 64, Iterations: 1, Parallelism: 1}
}

func keypair(t *testing.T, fill byte) *crypto.Keypair {
	t.Helper()
	kp, err := crypto.KeypairFromSeed(types.Mainnet, bytes.Repeat([]byte{fill}, crypto.SeedSize))
	require.NoError(t, err)
	return kp
}

// testWallet writes a wallet for the payer key and returns its path.
func testWallet(t *testing.T) (string, *crypto.Keypair) {
	t.Helper()
	kp := keypair(t, 1)
	path := filepath.Join(t.TempDir(), "wallet.key")
	_, err := wallet.Create(path, kp, []byte(testPassword), fastParams(), false)
	require.NoError(t, err)
	return path, kp
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	a := newApp()
	a.stdin = strings.NewReader(stdin)
	a.stdout = &out
	a.stderr = &errOut
	a.encParams = fastParams()

	root := newRootCmd(a)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func line(key, value string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)^` + regexp.QuoteMeta(key) + `\s+` + regexp.QuoteMeta(value) + `$`)
}

func TestBurn_DryRun(t *testing.T) {
	isolate(t)
	srv := newFakeAPI(t)
	path, _ := testWallet(t)
	payee := keypair(t, 2).PublicKey()

	out, err := run(t, "", "burn", "-f", path, "--api-url", srv.apiURL(),
		"--payee", payee.String(), "--amount", "100")
	require.NoError(t, err)

	assert.Regexp(t, line("Payee", payee.String()), out)
	assert.Regexp(t, line("Memo", "AAAAAAAAAAA="), out)
	assert.Regexp(t, line("Amount", "100.00000000"), out)
	assert.Regexp(t, line("Fee", "30000"), out)
	assert.Regexp(t, line("Nonce", "6"), out)
	assert.Regexp(t, line("Hash", "none"), out)
	assert.Contains(t, out, report.PreviewFooter)

	_, submitted := srv.stats()
	assert.Empty(t, submitted)
}

func TestBurn_Commit(t *testing.T) {
	isolate(t)
	srv := newFakeAPI(t)
	path, kp := testWallet(t)
	payee := keypair(t, 2).PublicKey()

	out, err := run(t, "", "burn", "-f", path, "--api-url", srv.apiURL(),
		"--payee", payee.String(), "--amount", "100", "--commit")
	require.NoError(t, err)
	assert.Regexp(t, line("Hash", "abc123"), out)
	assert.NotContains(t, out, report.PreviewFooter)

	_, submitted := srv.stats()
	require.Len(t, submitted, 1)
	env, err := txn.DecodeEnvelope(submitted[0])
	require.NoError(t, err)
	burn, ok := env.Txn().(*txn.TokenBurnV1)
	require.True(t, ok)
	assert.Equal(t, kp.PublicKey(), burn.Payer)
	assert.Equal(t, payee, burn.Payee)
	assert.Equal(t, uint64(10_000_000_000), burn.Amount)
	assert.Equal(t, uint64(6), burn.Nonce)
	assert.Equal(t, uint64(30000), burn.Fee)
	assert.Equal(t, types.Memo(0), burn.Memo)
	assert.GreaterOrEqual(t, len(burn.Signature), 64)
	assert.True(t, txn.Verify(burn))
}

// eccCompactPayee returns a mainnet ecc_compact address, the key type of
// routers and OUIs.
func eccCompactPayee(t *testing.T) types.PublicKey {
	t.Helper()
	raw := bytes.Repeat([]byte{0x5a}, types.PublicKeySize)
	raw[0] = byte(types.Mainnet)<<4 | byte(types.KeyTypeECCCompact)
	pk, err := types.PublicKeyFromBytes(raw)
	require.NoError(t, err)
	return pk
}

func TestBurn_ECCCompactPayee(t *testing.T) {
	isolate(t)
	srv := newFakeAPI(t)
	path, _ := testWallet(t)
	payee := eccCompactPayee(t)
	require.True(t, strings.HasPrefix(payee.String(), "11"))

	out, err := run(t, "", "burn", "-f", path, "--api-url", srv.apiURL(),
		"--payee", payee.String(), "--amount", "100", "--commit")
	require.NoError(t, err)
	assert.Regexp(t, line("Payee", payee.String()), out)
	assert.Regexp(t, line("Hash", "abc123"), out)

	_, submitted := srv.stats()
	require.Len(t, submitted, 1)
	env, err := txn.DecodeEnvelope(submitted[0])
	require.NoError(t, err)
	burn, ok := env.Txn().(*txn.TokenBurnV1)
	require.True(t, ok)
	assert.Equal(t, payee, burn.Payee)
	assert.Equal(t, uint64(30000), burn.Fee)
	assert.True(t, txn.Verify(burn))
}

func TestSecuritiesTransfer_ECCCompactPayee(t *testing.T) {
	isolate(t)
	srv := newFakeAPI(t)
	path, _ := testWallet(t)
	payee := eccCompactPayee(t)

	out, err := run(t, "", "securities", "transfer", payee.String(), "1",
		"-f", path, "--api-url", srv.apiURL())
	require.NoError(t, err)
	assert.Regexp(t, line("Payee", payee.String()), out)
	assert.Regexp(t, line("Nonce", "3"), out)
}

func TestBurn_DryRunMatchesCommit(t *testing.T) {
	isolate(t)
	srv := newFakeAPI(t)
	path, _ := testWallet(t)
	args := []string{"burn", "-f", path, "--api-url", srv.apiURL(), "--format", "json",
		"--payee", keypair(t, 2).PublicKey().String(), "--amount", "1.5", "--memo", "AQ=="}

	dry, err := run(t, "", args...)
	require.NoError(t, err)
	committed, err := run(t, "", append(args, "--commit")...)
	require.NoError(t, err)

	var a, b map[string]any
	require.NoError(t, json.Unmarshal([]byte(dry), &a))
	require.NoError(t, json.Unmarshal([]byte(committed), &b))

	assert.Nil(t, a["hash"])
	assert.Equal(t, "abc123", b["hash"])
	assert.Equal(t, a["txn"], b["txn"], "dry run and commit must sign identical envelopes")
	assert.Equal(t, "AQAAAAAAAAA=", a["memo"])
	assert.Equal(t, 1.5, a["amount"])
	for _, k := range []string{"payee", "amount", "memo", "fee", "nonce", "txn"} {
		assert.Equal(t, a[k], b[k], k)
	}

	_, submitted := srv.stats()
	require.Len(t, submitted, 1)
	assert.Equal(t, a["txn"], base64.StdEncoding.EncodeToString(submitted[0]))
}

func TestBurn_InputErrors(t *testing.T) {
	isolate(t)
	srv := newFakeAPI(t)
	path, _ := testWallet(t)
	payee := keypair(t, 2).PublicKey().String()
	corrupt := payee[:len(payee)-1] + "1"
	if strings.HasSuffix(payee, "1") {
		corrupt = payee[:len(payee)-1] + "2"
	}

	tests := []struct {
		name string
		args []string
	}{
		{"malformed payee", []string{"--payee", "notakey", "--amount", "1"}},
		{"bad checksum", []string{"--payee", corrupt, "--amount", "1"}},
		{"missing payee", []string{"--amount", "1"}},
		{"missing amount", []string{"--payee", payee}},
		{"negative amount", []string{"--payee", payee, "--amount", "-1"}},
		{"too many decimals", []string{"--payee", payee, "--amount", "0.000000001"}},
		{"bad memo", []string{"--payee", payee, "--amount", "1", "--memo", "!!!"}},
		{"long memo", []string{"--payee", payee, "--amount", "1", "--memo", "AAAAAAAAAAAA"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"burn", "-f", path, "--api-url", srv.apiURL()}, tt.args...)
			out, err := run(t, "", args...)
			assert.Error(t, err)
			assert.Empty(t, out)
		})
	}

	requests, _ := srv.stats()
	assert.Zero(t, requests, "input errors must not reach the network")
}

func TestBurn_WrongPassword(t *testing.T) {
	isolate(t)
	t.Setenv(passwordEnv, "wrong")
	srv := newFakeAPI(t)
	path, _ := testWallet(t)

	out, err := run(t, "", "burn", "-f", path, "--api-url", srv.apiURL(),
		"--payee", keypair(t, 2).PublicKey().String(), "--amount", "1")
	require.ErrorIs(t, err, wallet.ErrWrongPassword)
	assert.Empty(t, out)

	requests, _ := srv.stats()
	assert.Zero(t, requests)
}

func TestBurn_FeeScheduleFailure(t *testing.T) {
	isolate(t)
	srv := newFakeAPI(t)
	srv.failVars = true
	path, _ := testWallet(t)

	out, err := run(t, "", "burn", "-f", path, "--api-url", srv.apiURL(),
		"--payee", keypair(t, 2).PublicKey().String(), "--amount", "1", "--commit")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vars unavailable")
	assert.Empty(t, out)

	_, submitted := srv.stats()
	assert.Empty(t, submitted)
}

func TestShardedWalletRejected(t *testing.T) {
	isolate(t)
	path, _ := testWallet(t)

	_, err := run(t, "", "info", "-f", path, "-f", path)
	assert.ErrorIs(t, err, wallet.ErrShardedWallet)
}

func TestSecuritiesTransfer(t *testing.T) {
	isolate(t)
	srv := newFakeAPI(t)
	path, kp := testWallet(t)
	payee := keypair(t, 2).PublicKey()

	out, err := run(t, "", "securities", "transfer", payee.String(), "2.5",
		"-f", path, "--api-url", srv.apiURL(), "--format", "json", "--commit")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, payee.String(), doc["payee"])
	assert.Equal(t, 2.5, doc["amount"])
	assert.Equal(t, float64(3), doc["nonce"])
	assert.Equal(t, "abc123", doc["hash"])
	assert.NotContains(t, doc, "memo")

	_, submitted := srv.stats()
	require.Len(t, submitted, 1)
	env, err := txn.DecodeEnvelope(submitted[0])
	require.NoError(t, err)
	sec, ok := env.Txn().(*txn.SecurityExchangeV1)
	require.True(t, ok)
	assert.Equal(t, kp.PublicKey(), sec.Payer)
	assert.Equal(t, uint64(250_000_000), sec.Amount)
	assert.Equal(t, uint64(3), sec.Nonce)
	assert.True(t, txn.Verify(sec))
}

func TestSecuritiesTransfer_InputErrors(t *testing.T) {
	isolate(t)
	srv := newFakeAPI(t)
	path, _ := testWallet(t)
	payee := keypair(t, 2).PublicKey().String()

	for _, args := range [][]string{
		{"notakey", "1"},
		{payee, "-1"},
		{payee, "lots"},
		{payee},
	} {
		full := append([]string{"securities", "transfer", "-f", path, "--api-url", srv.apiURL()}, args...)
		_, err := run(t, "", full...)
		assert.Error(t, err, "%v", args)
	}

	requests, _ := srv.stats()
	assert.Zero(t, requests)
}

func TestCreateAndInfo(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "new.key")

	out, err := run(t, "", "create", "-f", path, "--format", "json")
	require.NoError(t, err)
	var created report.WalletInfo
	require.NoError(t, json.Unmarshal([]byte(out), &created))
	assert.Equal(t, types.Mainnet, created.Network)
	assert.Len(t, strings.Fields(created.Mnemonic), wallet.MnemonicWords)

	out, err = run(t, "", "info", "-f", path)
	require.NoError(t, err)
	assert.Regexp(t, line("Address", created.Address.String()), out)
	assert.NotContains(t, out, "Mnemonic")

	_, err = run(t, "", "create", "-f", path)
	assert.ErrorIs(t, err, wallet.ErrExists)
	_, err = run(t, "", "create", "-f", path, "--force", "--network", "testnet")
	assert.NoError(t, err)

	// The recovery phrase restores the original key.
	_, err = run(t, created.Mnemonic+"\n", "create", "-f", path, "--force", "--seed")
	require.NoError(t, err)
	w, err := wallet.Load(path)
	require.NoError(t, err)
	assert.Equal(t, created.Address, w.PublicKey())
	kp, err := w.Decrypt([]byte(testPassword))
	require.NoError(t, err)
	assert.Equal(t, created.Address, kp.PublicKey())
}

func TestCreate_Restore(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "restored.key")
	phrase := strings.Repeat("abandon ", 23) + "art"

	out, err := run(t, phrase+"\n", "create", "-f", path, "--seed", "--network", "testnet", "--format", "json")
	require.NoError(t, err)

	var info report.WalletInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	want, err := crypto.KeypairFromSeed(types.Testnet, make([]byte, crypto.SeedSize))
	require.NoError(t, err)
	assert.Equal(t, want.PublicKey(), info.Address)
	assert.Equal(t, types.Testnet, info.Network)
	assert.Empty(t, info.Mnemonic, "restored wallets do not echo the phrase")

	_, err = run(t, "not a phrase\n", "create", "-f", path, "--seed", "--force")
	assert.Error(t, err)
}

func TestBalance(t *testing.T) {
	isolate(t)
	srv := newFakeAPI(t)
	path, kp := testWallet(t)

	out, err := run(t, "", "balance", "-f", path, "--api-url", srv.apiURL())
	require.NoError(t, err)
	assert.Regexp(t, line("Address", kp.PublicKey().String()), out)
	assert.Regexp(t, line("HNT", "500.00000000"), out)
	assert.Regexp(t, line("HST", "7.00000000"), out)
	assert.Regexp(t, line("DC", "1,000,000"), out)

	other := keypair(t, 9).PublicKey()
	out, err = run(t, "", "balance", other.String(), "--api-url", srv.apiURL(), "--format", "json")
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, other.String(), doc["address"])

	_, err = run(t, "", "balance", "bogus", "--api-url", srv.apiURL())
	assert.Error(t, err)
}

func TestConfigErrors(t *testing.T) {
	isolate(t)
	path, _ := testWallet(t)

	_, err := run(t, "", "info", "-f", path, "--format", "yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"--format" flag`, "bad formats fail at flag parsing")

	t.Setenv("HELIUM_WALLET_FORMAT", "yaml")
	_, err = run(t, "", "info", "-f", path)
	assert.Error(t, err)
	t.Setenv("HELIUM_WALLET_FORMAT", "")

	_, err = run(t, "", "info", "-f", path, "--config", filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
