package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/google/shlex"

	"wladc/host/monitor"
	"wladc/host/publish"
	"wladc/host/serial"
	"wladc/stream"
)

var (
	device  = flag.String("device", "/dev/ttyACM0", "Serial device path")
	baud    = flag.Int("baud", 115200, "Baud rate (ignored for USB CDC)")
	broker  = flag.String("mqtt", "", "MQTT broker URL, empty disables publishing")
	topic   = flag.String("topic", "wladc", "MQTT topic prefix")
	verbose = flag.Bool("verbose", false, "Print raw record lines")
)

func main() {
	flag.Parse()

	fmt.Println("wladc-mon - ADC telemetry monitor")

	fmt.Printf("Opening %s...\n", *device)
	port, err := serial.Open(*device, *baud)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer port.Close()

	var pub *publish.Publisher
	if *broker != "" {
		pub, err = publish.Connect(*broker, "wladc-mon", *topic)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer pub.Close()
		fmt.Printf("Publishing to %s under %s/\n", *broker, *topic)
	}

	var mu sync.Mutex
	var mon monitor.Monitor

	go func() {
		if err := readLoop(port, &mu, &mon, pub); err != nil {
			fmt.Fprintf(os.Stderr, "Telemetry reader stopped: %v\n", err)
		} else {
			fmt.Fprintln(os.Stderr, "Telemetry reader stopped: serial port closed")
		}
	}()

	// Interactive command loop
	fmt.Println("Enter commands (type 'help' for available commands, 'quit' to exit):")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts, err := shlex.Split(line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "quit", "exit", "q":
			fmt.Println("Goodbye!")
			return

		case "help", "?":
			printHelp()

		case "status":
			mu.Lock()
			calibrated := mon.Calibrated()
			clock := mon.ClockHz()
			mu.Unlock()
			fmt.Printf("calibrated: %v, sampling clock: %d Hz\n", calibrated, clock)

		case "temp":
			printLast(&mu, &mon, monitor.TagTemperature)

		case "vref":
			printLast(&mu, &mon, monitor.TagVref)

		case "vbat":
			printLast(&mu, &mon, monitor.TagVbat)

		case "clock":
			printLast(&mu, &mon, monitor.TagClock)

		default:
			fmt.Printf("Unknown command: %s (type 'help' for available commands)\n", parts[0])
		}
	}

	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}
}

// readLoop consumes telemetry lines from the serial port, printing
// interpreted readings and forwarding them to the publisher when one is
// configured. It returns the scanner's error when the stream dies, nil
// on a clean close. A stalled firmware surfaces here as io.ErrNoProgress
// once the timed-out reads stop making progress.
func readLoop(port io.Reader, mu *sync.Mutex, mon *monitor.Monitor, pub *publish.Publisher) error {
	scanner := bufio.NewScanner(port)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if *verbose {
			fmt.Printf("<< %s\n", line)
		}

		rec, err := stream.Parse(line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Bad record %q: %v\n", line, err)
			continue
		}

		mu.Lock()
		reading, err := mon.Handle(rec)
		mu.Unlock()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Record %s: %v\n", rec.Tag, err)
			continue
		}

		fmt.Printf("[%s] %s\n", reading.Tag, reading.Text)

		if pub != nil {
			if err := pub.Publish(reading); err != nil {
				fmt.Fprintf(os.Stderr, "Publish: %v\n", err)
			}
		}
	}
	return scanner.Err()
}

// printLast shows the most recent reading for a record tag.
func printLast(mu *sync.Mutex, mon *monitor.Monitor, tag string) {
	mu.Lock()
	reading, ok := mon.Last(tag)
	mu.Unlock()
	if !ok {
		fmt.Printf("no %s record received yet\n", tag)
		return
	}
	fmt.Printf("[%s] %s\n", reading.Tag, reading.Text)
}

func printHelp() {
	fmt.Println("\nAvailable commands:")
	fmt.Println("  help           - Show this help message")
	fmt.Println("  status         - Show firmware calibration and clock state")
	fmt.Println("  temp           - Show the last temperature reading")
	fmt.Println("  vref           - Show the last internal reference reading")
	fmt.Println("  vbat           - Show the last battery reading")
	fmt.Println("  clock          - Show the last sampling clock report")
	fmt.Println("  quit/exit/q    - Exit the program")
	fmt.Println()
}
