// Command node runs one election member as a standalone process: a gRPC
// transport, a bbolt-backed recording log, an in-memory host agent, and
// a read-only HTTP status endpoint, ticked on a fixed-rate loop until a
// leader is settled or the process is signaled to stop.
package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"electionfsm/internal/archiveclient"
	"electionfsm/internal/config"
	"electionfsm/internal/election"
	"electionfsm/internal/hostagent"
	"electionfsm/internal/logging"
	"electionfsm/internal/logstore"
	"electionfsm/internal/recordinglog"
	"electionfsm/internal/status"
	"electionfsm/internal/transport"
)

// tickInterval is how often the process calls fsm.Tick. It is
// independent of the election's own timing config (canvass interval,
// election timeout); those are thresholds Tick checks against now, not
// the polling rate Tick is called at.
const tickInterval = 10 * time.Millisecond

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log := logging.New(int32(cfg.SelfID))

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		log.Fatalf("failed to create data directory %s: %v", cfg.DataDir, err)
	}

	recLog, err := recordinglog.Open(fmt.Sprintf("%s/member-%d.bbolt", cfg.DataDir, cfg.SelfID))
	if err != nil {
		log.Fatalf("failed to open recording log: %v", err)
	}
	defer recLog.Close()

	peerIDs := make([]election.MemberID, 0, len(cfg.Peers))
	for _, p := range cfg.Peers {
		peerIDs = append(peerIDs, p.ID)
		transport.RegisterPeerAddr(p.ID, p.Addr)
	}

	metrics := election.NewMetrics()
	members := election.NewMemberTable(cfg.SelfID, peerIDs)

	grpcTransport := transport.NewGRPCTransport(cfg.SelfID, peerIDs, metrics)
	defer grpcTransport.Close()

	host := hostagent.NewInMemoryHost()
	store := logstore.NewStore()
	archiveClient := archiveclient.NewGRPCArchiveClient(grpcTransport, transport.RPCTimeout)

	fsm := election.NewElectionFSM(members, cfg.ElectionConfig(), grpcTransport, host, recLog, archiveClient, metrics, log, true)

	srv := transport.NewServer(fsm, store)
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Port))
	if err != nil {
		log.Fatalf("failed to listen on port %d: %v", cfg.Port, err)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := srv.Serve(lis); err != nil {
			log.Warnf("gRPC server stopped: %v", err)
		}
	}()

	var statusSrv *status.Server
	if cfg.StatusAddr != "" {
		statusLis, err := net.Listen("tcp", cfg.StatusAddr)
		if err != nil {
			log.Warnf("failed to start status endpoint on %s: %v", cfg.StatusAddr, err)
		} else {
			statusSrv = status.NewServer(cfg.SelfID, fsm)
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := statusSrv.Serve(statusLis); err != nil {
					log.Warnf("status endpoint stopped: %v", err)
				}
			}()
		}
	}

	signalCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

runLoop:
	for {
		select {
		case now := <-ticker.C:
			if err := fsm.Tick(now); err != nil {
				if err == election.ErrClosed {
					log.Infof("election complete, idling until shutdown")
					break runLoop
				}
				log.Warnf("tick error: %v", err)
			}
		case <-signalCtx.Done():
			break runLoop
		}
	}

	<-signalCtx.Done()
	log.Infof("shutting down")

	fsm.Close()
	srv.Stop()
	if statusSrv != nil {
		_ = statusSrv.Close()
	}
	wg.Wait()
}
