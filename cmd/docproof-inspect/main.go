package main

import (
	"flag"
	"fmt"
	"log"
	"math/big"
	"time"

	"github.com/mr-tron/base58"
	"github.com/nspcc-dev/docproof-contract/contracts/registry/docstatus"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

func main() {
	endpoint := flag.String("rpc", "", "Network address of the Neo RPC server")
	configPath := flag.String("config", "", "Path to the YAML configuration file (flags take precedence)")
	registryAddress := flag.String("registry", "", "DocProof Registry contract address (LE hex)")
	rosterAddress := flag.String("roster", "", "DocProof Roster contract address (LE hex)")
	docID := flag.String("doc", "", "Content hash of the document to inspect (LE hex or base58)")

	flag.Parse()

	if *configPath != "" {
		cfg, err := loadConfig(*configPath)
		if err != nil {
			log.Fatal(err)
		}

		if *endpoint == "" {
			*endpoint = cfg.RPCEndpoint
		}
		if *registryAddress == "" {
			*registryAddress = cfg.RegistryContract
		}
		if *rosterAddress == "" {
			*rosterAddress = cfg.RosterContract
		}
	}

	switch {
	case *endpoint == "":
		log.Fatal("missing Neo RPC endpoint")
	case *registryAddress == "":
		log.Fatal("missing Registry contract address")
	case *rosterAddress == "":
		log.Fatal("missing Roster contract address")
	}

	b, err := newRemoteBlockchain(*endpoint, *registryAddress, *rosterAddress)
	if err != nil {
		log.Fatal(fmt.Errorf("init remote blockchain: %w", err))
	}

	defer b.close()

	if *docID != "" {
		err = inspectDocument(b, *docID)
	} else {
		err = inspectService(b)
	}
	if err != nil {
		log.Fatal(err)
	}
}

// inspectDocument prints the notarization state of a single document: its
// status, notary, signing progress and version history.
func inspectDocument(b *remoteBlockchain, id string) error {
	hash, err := parseDocumentID(id)
	if err != nil {
		return fmt.Errorf("parse document ID: %w", err)
	}

	res, err := b.registry.Verify(hash)
	if err != nil {
		return fmt.Errorf("verify document: %w", err)
	}

	fmt.Printf("Document %s (%s)\n", base58.Encode(hash.BytesBE()), hash.StringLE())

	if !res.Exists {
		fmt.Println("Status:   not notarized")
		return nil
	}

	fmt.Printf("Status:   %s\n", statusString(res.Status))
	fmt.Printf("Notary:   %s\n", address.Uint160ToString(res.Notary))
	fmt.Printf("Created:  %s\n", time.UnixMilli(res.CreatedAt.Int64()).UTC().Format(time.RFC3339))

	metadata, err := b.registry.GetMetadata(hash)
	if err != nil {
		return fmt.Errorf("get document metadata: %w", err)
	}

	fmt.Printf("Metadata: %s\n", metadata)

	signers, err := b.registry.GetRequiredSigners(hash)
	if err != nil {
		return fmt.Errorf("get required signers: %w", err)
	}

	fmt.Printf("Required signers (%d of %d signed):\n", res.SignCount, len(signers))

	for i := range signers {
		signed, err := b.registry.HasSigned(hash, signers[i])
		if err != nil {
			return fmt.Errorf("get signing state of %s: %w", address.Uint160ToString(signers[i]), err)
		}

		marker := " "
		if signed {
			marker = "+"
		}

		fmt.Printf("  [%s] %s\n", marker, address.Uint160ToString(signers[i]))
	}

	approvers, err := b.registry.GetApprovers(hash)
	if err != nil {
		return fmt.Errorf("get approvers: %w", err)
	}

	fmt.Printf("Approvers (%d):\n", len(approvers))

	for i := range approvers {
		fmt.Printf("      %s\n", address.Uint160ToString(approvers[i]))
	}

	versions, err := b.registry.GetVersions(hash)
	if err != nil {
		return fmt.Errorf("get document versions: %w", err)
	}

	if len(versions) > 0 {
		fmt.Println("Versions:")

		for _, v := range versions {
			latest := ""
			if v.Latest {
				latest = " (latest)"
			}

			fmt.Printf("  #%d %s by %s: %s%s\n", v.Number, v.Hash.StringLE(),
				address.Uint160ToString(v.Creator), v.Description, latest)
		}
	}

	return nil
}

// inspectService prints the service-wide state: the roster of notaries and
// all notarized documents.
func inspectService(b *remoteBlockchain) error {
	owner, err := b.roster.Owner()
	if err != nil {
		return fmt.Errorf("get service owner: %w", err)
	}

	fmt.Printf("Service owner: %s\n", address.Uint160ToString(owner))

	notaries, err := b.listNotaries()
	if err != nil {
		return fmt.Errorf("list notaries: %w", err)
	}

	fmt.Printf("Notaries (%d):\n", len(notaries))

	for i := range notaries {
		fmt.Printf("  %s\n", address.Uint160ToString(notaries[i]))
	}

	total, err := b.registry.TotalDocuments()
	if err != nil {
		return fmt.Errorf("get total number of documents: %w", err)
	}

	docs, err := b.listDocuments()
	if err != nil {
		return fmt.Errorf("list documents: %w", err)
	}

	fmt.Printf("Documents (%d total):\n", total)

	for i := range docs {
		fmt.Printf("  %s (%s)\n", base58.Encode(docs[i].BytesBE()), docs[i].StringLE())
	}

	return nil
}

// parseDocumentID accepts a document content hash in LE hex form (as printed
// by Neo tooling) or in base58 form.
func parseDocumentID(s string) (util.Uint256, error) {
	h, err := util.Uint256DecodeStringLE(s)
	if err == nil {
		return h, nil
	}

	data, err := base58.Decode(s)
	if err != nil {
		return util.Uint256{}, fmt.Errorf("neither LE hex nor base58: %w", err)
	}

	return util.Uint256DecodeBytesBE(data)
}

func statusString(status *big.Int) string {
	switch docstatus.Type(status.Int64()) {
	case docstatus.Pending:
		return "PENDING"
	case docstatus.Signed:
		return "SIGNED"
	case docstatus.Approved:
		return "APPROVED"
	case docstatus.Rejected:
		return "REJECTED"
	case docstatus.Archived:
		return "ARCHIVED"
	default:
		return "UNKNOWN"
	}
}
