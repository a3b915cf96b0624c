/*
Package roster implements Roster contract which is deployed to DocProof chain.

Roster contract tracks the DocProof service owner and the set of accounts
authorized to notarize documents in the Registry contract. The owner is set
once at deployment and is implicitly authorized; the notary set is mutated by
the owner only. Registry consults Roster with IsAuthorizedNotary on every
notarization.

# Contract notifications

NotaryAdded notification. This notification is produced when the owner
authorizes an account, repeated authorization included.

	NotaryAdded:
	  - name: notary
	    type: Hash160

NotaryRemoved notification. This notification is produced when the owner
revokes an account, unknown accounts included.

	NotaryRemoved:
	  - name: notary
	    type: Hash160
*/
package roster

/*
Contract storage model.

Current conventions:
 <account>: 20-byte NEO3 account script hash

# Summary
Key-value storage format:
 - 'owner' -> interop.Hash160
   service owner account
 - 0x01<account> -> []byte{1}
   marker of an authorized notary account
*/
