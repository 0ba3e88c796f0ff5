/*
Package escrow implements a time-boxed escrow ledger.

A sender deposits funds earmarked for a recipient. The funds are kept on an
address controlled by the escrow itself. Until the release time is reached
the sender can take the funds back. From the release time on, only the
recipient can withdraw them. Both transitions are final and exclusive.

All mutating operations of a Ledger are executed one at a time. The state
change and the payment are committed together or not at all. A payee that
calls back into the ledger while being paid is rejected with ErrReentrancy.
*/
package escrow
